package handlers

import (
	"net/http"

	"ledger-backend/internal/services"
	"ledger-backend/pkg/utils"
)

type SummaryHandler struct {
	Service *services.SummaryService
}

func NewSummaryHandler(s *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{Service: s}
}

func (h *SummaryHandler) Global(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Service.Global(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, sum)
}
