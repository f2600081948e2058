package handlers

import (
	"net/http"
	"strconv"

	"ledger-backend/internal/services"
	"ledger-backend/pkg/utils"
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(s *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: s}
}

// pageParam defaults to 1. The service clamps anything out of range.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func (h *HistoryHandler) Payments(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.PaymentsPage(r.Context(), pageParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *HistoryHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.PurchasesPage(r.Context(), pageParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}
