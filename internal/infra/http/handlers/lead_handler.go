package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

type LeadHandler struct {
	Repo        entity.LeadRepositoryInterface
	ActivityLog entity.ActivityLogRepositoryInterface
	CreateUC    *usecase.CreateLeadUseCase
}

func NewLeadHandler(repo entity.LeadRepositoryInterface, activityLog entity.ActivityLogRepositoryInterface, createUC *usecase.CreateLeadUseCase) *LeadHandler {
	return &LeadHandler{Repo: repo, ActivityLog: activityLog, CreateUC: createUC}
}

// actorFromRequest builds the audit identity. There is no auth layer;
// dashboard callers identify themselves via headers, everything else is
// recorded as System.
func actorFromRequest(r *http.Request) usecase.Actor {
	return usecase.Actor{
		Name:      r.Header.Get("X-User-Name"),
		Email:     r.Header.Get("X-User-Email"),
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func parseLeadFilter(r *http.Request) (entity.LeadFilter, int, int) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	filter := entity.LeadFilter{
		Source: q.Get("source"),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if from := q.Get("dateFrom"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = t
		}
	}
	if to := q.Get("dateTo"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = t
		}
	}
	return filter, page, limit
}

// List serves both GET /leads and GET /leads/filter: the filter variant
// merely honors more query parameters, which parseLeadFilter always reads.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := parseLeadFilter(r)

	leads, total, err := h.Repo.List(r.Context(), filter, page, limit)
	if err != nil {
		log.Printf("❌ Get leads error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch leads", err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"leads":      leads,
		"pagination": NewPagination(page, limit, total),
	}, "")
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Repo.FindByID(r.Context(), id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		respondError(w, http.StatusNotFound, "Lead not found", "No lead found with ID: "+id)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch lead", err.Error())
		return
	}

	respondData(w, http.StatusOK, lead, "")
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), input, actorFromRequest(r))
	if err != nil {
		var dup *usecase.DuplicateLeadError
		if errors.As(err, &dup) {
			respondJSON(w, http.StatusConflict, Envelope{
				Success: false,
				Error:   "Duplicate entry",
				Message: fmt.Sprintf("Lead with this %s already exists", dup.Field),
				Data: map[string]any{
					"existingLead": map[string]string{
						"id":    dup.Existing.ID,
						"name":  dup.Existing.Name,
						"email": dup.Existing.Email,
						"phone": dup.Existing.Phone,
					},
				},
			})
			return
		}
		if usecase.IsDomainError(err) {
			respondError(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create lead", err.Error())
		return
	}

	respondData(w, http.StatusCreated, lead, "Lead created successfully")
}

// UpdateLeadInput carries the mutable subset; nil pointers mean "leave
// untouched". Notes is full replacement, matching the append/replace-only
// contract.
type UpdateLeadInput struct {
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Service      *string   `json:"service"`
	Vehicle      *string   `json:"vehicle"`
	City         *string   `json:"city"`
	RentalDays   *string   `json:"rentalDays"`
	RentalMonths *string   `json:"rentalMonths"`
	Campaign     *string   `json:"campaign"`
	Keyword      *string   `json:"keyword"`
	Status       *string   `json:"status"`
	AssignedTo   *string   `json:"assignedTo"`
	Notes        *[]string `json:"notes"`
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	oldLead, err := h.Repo.FindByID(r.Context(), id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		respondError(w, http.StatusNotFound, "Lead not found", "No lead found with ID: "+id)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update lead", err.Error())
		return
	}

	lead := *oldLead
	applyUpdate(&lead, input)

	if err := h.Repo.Update(r.Context(), &lead); err != nil {
		if errors.Is(err, entity.ErrDuplicateLead) {
			respondError(w, http.StatusConflict, "Duplicate entry", "Lead with this email already exists for this source")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update lead", err.Error())
		return
	}

	h.logActivity(r, entity.ActionUpdateLead, lead.ID,
		fmt.Sprintf("Updated lead: %s (%s)", lead.Name, lead.Email),
		oldLead, &lead, nil)

	respondData(w, http.StatusOK, lead, "Lead updated successfully")
}

func applyUpdate(lead *entity.Lead, input UpdateLeadInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&lead.Name, input.Name)
	set(&lead.Email, input.Email)
	set(&lead.Phone, input.Phone)
	set(&lead.Service, input.Service)
	set(&lead.Vehicle, input.Vehicle)
	set(&lead.City, input.City)
	set(&lead.RentalDays, input.RentalDays)
	set(&lead.RentalMonths, input.RentalMonths)
	set(&lead.Campaign, input.Campaign)
	set(&lead.Keyword, input.Keyword)
	set(&lead.Status, input.Status)
	set(&lead.AssignedTo, input.AssignedTo)
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
}

type assignRequest struct {
	UserID string `json:"userId"`
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "Validation error", "User ID is required")
		return
	}

	lead, err := h.Repo.Assign(r.Context(), id, req.UserID)
	if errors.Is(err, entity.ErrLeadNotFound) {
		respondError(w, http.StatusNotFound, "Lead not found", "No lead found with ID: "+id)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to assign lead", err.Error())
		return
	}

	respondData(w, http.StatusOK, lead, "Lead assigned successfully")
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		respondError(w, http.StatusNotFound, "Lead not found", "No lead found with ID: "+id)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete lead", err.Error())
		return
	}

	h.logActivity(r, entity.ActionDeleteLead, lead.ID,
		fmt.Sprintf("Deleted lead: %s (%s)", lead.Name, lead.Email),
		lead, nil, map[string]any{"source": lead.Source, "status": lead.Status})

	respondData(w, http.StatusOK, map[string]any{"deletedLead": lead}, "Lead deleted successfully")
}

func (h *LeadHandler) logActivity(r *http.Request, action, entityID, description string, oldData, newData any, metadata map[string]any) {
	if h.ActivityLog == nil {
		return
	}
	actor := actorFromRequest(r)
	name, email := actor.Name, actor.Email
	if name == "" {
		name = "System"
	}
	if email == "" {
		email = "system@urbancruise.in"
	}

	entry := &entity.ActivityLogEntry{
		ID:          uuid.New().String(),
		UserName:    name,
		UserEmail:   email,
		Action:      action,
		EntityType:  "LEAD",
		EntityID:    entityID,
		Description: description,
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
		OldData:     oldData,
		NewData:     newData,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}
	if err := h.ActivityLog.Create(context.WithoutCancel(r.Context()), entry); err != nil {
		log.Printf("⚠️ Failed to write activity log: %v", err)
	}
}
