package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
	"github.com/urbancruise/cruise-lms/internal/infra/integration/meta"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

// SyncHandler exposes the automated pollers over HTTP: on-demand Meta and
// Google fetches, the run-everything sync, and the Meta webhook pair.
type SyncHandler struct {
	Sync       *usecase.SyncLeadsUseCase
	MetaClient *meta.Client
}

func NewSyncHandler(sync *usecase.SyncLeadsUseCase, metaClient *meta.Client) *SyncHandler {
	return &SyncHandler{Sync: sync, MetaClient: metaClient}
}

func (h *SyncHandler) FetchMetaLeads(w http.ResponseWriter, r *http.Request) {
	h.runAdapter(w, r, entity.SourceMeta)
}

func (h *SyncHandler) FetchGoogleLeads(w http.ResponseWriter, r *http.Request) {
	h.runAdapter(w, r, entity.SourceGoogle)
}

func (h *SyncHandler) runAdapter(w http.ResponseWriter, r *http.Request, source string) {
	result, err := h.Sync.RunAdapter(r.Context(), source)
	if err != nil {
		middleware.RecordSyncError(source)
		var apiErr *usecase.ExternalAPIError
		if errors.As(err, &apiErr) {
			respondError(w, http.StatusInternalServerError, "External API error", apiErr.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "Sync failed", err.Error())
		return
	}

	middleware.RecordIngest(source, result.Imported, result.Skipped)
	respondData(w, http.StatusOK, result, result.Message)
}

// RunAll polls every registered source and reports per-adapter outcomes.
func (h *SyncHandler) RunAll(w http.ResponseWriter, r *http.Request) {
	results := h.Sync.RunAll(r.Context())
	for _, result := range results {
		middleware.RecordIngest(result.Source, result.Imported, result.Skipped)
	}
	respondData(w, http.StatusOK, results, "Lead synchronization completed")
}

// VerifyWebhook is Meta's GET subscription handshake: echo the challenge
// when the verify token matches.
func (h *SyncHandler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("verify_token")
	challenge := r.URL.Query().Get("challenge")

	if h.MetaClient != nil && h.MetaClient.VerifyWebhookToken(token) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte("Verification failed"))
}

// ReceiveWebhook ingests leadgen events pushed by Meta. The webhook path
// reuses the poll pipeline, so replayed events dedup naturally.
func (h *SyncHandler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	var event meta.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	rows := meta.RowsFromWebhook(event)
	if len(rows) > 0 {
		result := h.Sync.IngestRows(r.Context(), rows, entity.SourceMeta)
		middleware.RecordIngest(entity.SourceMeta, result.Imported, result.Skipped)
		log.Printf("📘 Meta webhook: %d leads received, %d new", result.Total, result.Imported)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("EVENT_RECEIVED"))
}

func (h *SyncHandler) ValidateMetaToken(w http.ResponseWriter, r *http.Request) {
	if h.MetaClient == nil || !h.MetaClient.IsConfigured() {
		respondError(w, http.StatusBadRequest, "Not configured", "Meta API not configured")
		return
	}

	out, err := h.MetaClient.ValidateToken(r.Context())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Token validation failed", err.Error())
		return
	}
	if !out.Valid {
		respondError(w, http.StatusBadRequest, "Invalid token", "Meta access token is invalid")
		return
	}

	respondData(w, http.StatusOK, out, "Meta access token is valid")
}
