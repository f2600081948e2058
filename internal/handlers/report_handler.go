package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"ledger-backend/internal/services"
)

type ReportHandler struct {
	Service *services.ClientReportService
}

func NewReportHandler(s *services.ClientReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ClientReport streams the PDF. ?archive=1 also uploads a copy.
func (h *ReportHandler) ClientReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	archive, _ := strconv.ParseBool(r.URL.Query().Get("archive"))

	doc, err := h.Service.Generate(r.Context(), id, archive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.PDF)))
	w.Write(doc.PDF)
}
