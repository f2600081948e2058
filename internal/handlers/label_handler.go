package handlers

import (
	"net/http"

	"ledger-backend/internal/models"
	"ledger-backend/internal/services"
	"ledger-backend/pkg/utils"
)

type LabelHandler struct {
	Service *services.LabelService
}

func NewLabelHandler(s *services.LabelService) *LabelHandler {
	return &LabelHandler{Service: s}
}

// List returns a handler for one reference list.
func (h *LabelHandler) List(kind models.LabelKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labels, err := h.Service.List(r.Context(), kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if labels == nil {
			labels = []models.Label{}
		}
		utils.JSON(w, http.StatusOK, labels)
	}
}

func (h *LabelHandler) Create(kind models.LabelKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateLabelRequest
		if !decode(w, r, &req) {
			return
		}

		label, err := h.Service.Create(r.Context(), kind, req.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.JSON(w, http.StatusCreated, label)
	}
}
