package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// DuplicateLeadError carries the conflicting record so the handler can
// surface who already owns the email or phone number.
type DuplicateLeadError struct {
	Field    string // "email" or "phone"
	Existing *entity.Lead
}

func (e *DuplicateLeadError) Error() string {
	return fmt.Sprintf("lead with this %s already exists", e.Field)
}

// CreateLeadUseCase is the manual dashboard path. Unlike the automated
// pollers, it also rejects a candidate whose phone collides with any
// existing lead regardless of source. Automated campaigns may share
// phone numbers, operators should not create twins.
type CreateLeadUseCase struct {
	Repo        entity.LeadRepositoryInterface
	ActivityLog entity.ActivityLogRepositoryInterface
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, activityLog entity.ActivityLogRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, ActivityLog: activityLog}
}

// Actor identifies who triggered an operation, for the audit trail.
type Actor struct {
	Name      string
	Email     string
	IPAddress string
	UserAgent string
}

func (a Actor) orSystem() Actor {
	if a.Name == "" {
		a.Name = "System"
	}
	if a.Email == "" {
		a.Email = "system@urbancruise.in"
	}
	if a.IPAddress == "" {
		a.IPAddress = "unknown"
	}
	return a
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput, actor Actor) (*entity.Lead, error) {
	if validationErrors := ValidateCreateLeadInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: errMsg}
	}

	existing, err := uc.Repo.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "duplicate check failed: " + err.Error()}
	}
	if existing != nil {
		field := "email"
		if existing.Email != input.Email {
			field = "phone"
		}
		return nil, &DuplicateLeadError{Field: field, Existing: existing}
	}

	now := time.Now()
	status := input.Status
	if status == "" {
		status = entity.StatusNew
	}
	service := input.Service
	if service == "" {
		service = defaultService
	}
	notes := input.Notes
	if notes == nil {
		notes = []string{}
	}

	lead := &entity.Lead{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Service:      service,
		Vehicle:      input.Vehicle,
		City:         input.City,
		RentalDays:   input.RentalDays,
		RentalMonths: input.RentalMonths,
		Source:       input.Source,
		Campaign:     input.Campaign,
		Keyword:      input.Keyword,
		Status:       status,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}

	uc.logActivity(ctx, lead, actor)

	return lead, nil
}

// Audit write is a side effect: failures are logged and swallowed.
func (uc *CreateLeadUseCase) logActivity(ctx context.Context, lead *entity.Lead, actor Actor) {
	if uc.ActivityLog == nil {
		return
	}
	actor = actor.orSystem()
	entry := &entity.ActivityLogEntry{
		ID:          uuid.New().String(),
		UserName:    actor.Name,
		UserEmail:   actor.Email,
		Action:      entity.ActionCreateLead,
		EntityType:  "LEAD",
		EntityID:    lead.ID,
		Description: fmt.Sprintf("Created new lead: %s (%s)", lead.Name, lead.Email),
		IPAddress:   actor.IPAddress,
		UserAgent:   actor.UserAgent,
		NewData:     lead,
		Metadata:    map[string]any{"source": lead.Source},
		CreatedAt:   time.Now(),
	}
	if err := uc.ActivityLog.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write activity log: %v", err)
	}
}
