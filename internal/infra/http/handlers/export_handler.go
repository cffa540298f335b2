package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/infra/export"
)

type ExportHandler struct {
	Repo entity.LeadRepositoryInterface
}

func NewExportHandler(repo entity.LeadRepositoryInterface) *ExportHandler {
	return &ExportHandler{Repo: repo}
}

func (h *ExportHandler) ExportLeads(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	filter, _, _ := parseLeadFilter(r)

	leads, err := h.Repo.FindAll(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Export failed", err.Error())
		return
	}

	fileName := "leads_export_" + time.Now().Format("2006-01-02")

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", fileName))
		err = export.WriteCSV(w, leads)
	case "excel":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", fileName))
		err = export.WriteExcel(w, leads)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", fileName))
		err = export.WritePDF(w, leads)
	default:
		respondError(w, http.StatusBadRequest, "Invalid format", "Use excel, pdf, or csv")
		return
	}

	if err != nil {
		// Headers may already be on the wire; nothing sane to send back.
		fmt.Printf("❌ Export write error: %v\n", err)
	}
}
