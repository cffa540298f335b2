package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
	"github.com/urbancruise/cruise-lms/internal/infra/importer"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

type ImportHandler struct {
	FileUC *usecase.ImportLeadsUseCase
	URLUC  *usecase.ImportFromURLUseCase
}

func NewImportHandler(fileUC *usecase.ImportLeadsUseCase, urlUC *usecase.ImportFromURLUseCase) *ImportHandler {
	return &ImportHandler{FileUC: fileUC, URLUC: urlUC}
}

// ImportFile accepts a single multipart "file" field, CSV or spreadsheet,
// capped at 10MB. The MIME gate runs before any parsing.
func (h *ImportHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxFileSize)
	if err := r.ParseMultipartForm(importer.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Upload failed", "No file uploaded or file exceeds 10MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Upload failed", "No file uploaded")
		return
	}
	defer file.Close()

	if !importer.AllowedFile(header.Filename, header.Header.Get("Content-Type")) {
		respondError(w, http.StatusBadRequest, "Invalid file type", "Only Excel and CSV files are allowed")
		return
	}

	rows, err := importer.ParseFile(header.Filename, file)
	if err != nil {
		log.Printf("❌ Import error: %v", err)
		respondError(w, http.StatusBadRequest, "Import failed", err.Error())
		return
	}

	result := h.FileUC.Execute(r.Context(), rows, actorFromRequest(r))
	middleware.RecordIngest(entity.SourceImport, result.Imported, result.Skipped)

	respondData(w, http.StatusOK, result, fmt.Sprintf(
		"Import completed. %d leads imported, %d skipped (duplicates)",
		result.Imported, result.Skipped))
}

type urlImportRequest struct {
	URL string `json:"url"`
}

func (h *ImportHandler) ImportFromURL(w http.ResponseWriter, r *http.Request) {
	var req urlImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	result, err := h.URLUC.Execute(r.Context(), req.URL)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			respondError(w, http.StatusBadRequest, domainErr.Code, domainErr.Message)
			return
		}
		log.Printf("❌ URL import error: %v", err)
		respondError(w, http.StatusInternalServerError, "URL import failed", err.Error())
		return
	}

	middleware.RecordIngest(entity.SourceURLImport, result.Imported, result.Skipped)
	respondData(w, http.StatusOK, result, fmt.Sprintf(
		"Import from URL completed. %d leads imported, %d skipped",
		result.Imported, result.Skipped))
}
