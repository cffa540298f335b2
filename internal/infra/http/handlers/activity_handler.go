package handlers

import (
	"net/http"
	"strconv"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

type ActivityHandler struct {
	Repo entity.ActivityLogRepositoryInterface
}

func NewActivityHandler(repo entity.ActivityLogRepositoryInterface) *ActivityHandler {
	return &ActivityHandler{Repo: repo}
}

func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.Repo.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch activity", err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]any{"activities": entries}, "")
}
