package handlers

import (
	"errors"
	"net/http"

	"ledger-backend/internal/models"
	"ledger-backend/internal/services"
	"ledger-backend/pkg/utils"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := h.Service.CreateClient(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, client)
}

// GetClient returns the client with its payments, purchases and totals.
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.Service.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.ListClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if !decode(w, r, &req) {
		return
	}

	client, err := h.Service.UpdateClient(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

// deleteFailure is the body of a failed client delete.
type deleteFailure struct {
	Error string `json:"error"`
	Step  string `json:"step"`
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.Service.DeleteClient(r.Context(), id)
	var partial *services.PartialDeleteError
	if errors.As(err, &partial) {
		utils.JSON(w, http.StatusInternalServerError, deleteFailure{Error: err.Error(), Step: partial.Step})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}
