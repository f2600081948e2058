package utils

import (
	"encoding/json"
	"net/http"

	"ledger-backend/internal/logger"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.Warnw("[HTTP] encode response", "error", err)
	}
}
