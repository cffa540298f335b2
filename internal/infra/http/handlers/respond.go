package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the response shape every endpoint returns.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Pagination struct {
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalCount:  total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}

func respondJSON(w http.ResponseWriter, status int, env Envelope) {
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, data any, message string) {
	respondJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, status int, errLabel, message string) {
	respondJSON(w, status, Envelope{Success: false, Error: errLabel, Message: message})
}
