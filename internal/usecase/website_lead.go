package usecase

import (
	"context"
	"log"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// CreateWebsiteLeadUseCase handles the public contact form: one candidate
// per call, straight through Normalizer + Resolver, then a notification.
type CreateWebsiteLeadUseCase struct {
	Resolver  *DuplicateResolver
	Publisher NotificationPublisher
}

func NewCreateWebsiteLeadUseCase(resolver *DuplicateResolver, publisher NotificationPublisher) *CreateWebsiteLeadUseCase {
	return &CreateWebsiteLeadUseCase{Resolver: resolver, Publisher: publisher}
}

func (uc *CreateWebsiteLeadUseCase) Execute(ctx context.Context, input WebsiteLeadInput) (*entity.Lead, error) {
	raw := map[string]any{
		"name":    input.Name,
		"email":   input.Email,
		"phone":   input.Phone,
		"service": input.Service,
		"city":    input.City,
		"notes":   input.Message,
	}

	lead, err := Normalize(raw, entity.SourceWebsite)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "name and email are required"}
	}
	if lead.Name == "" || lead.Email == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "name and email are required"}
	}

	decision, err := uc.Resolver.Store(ctx, lead)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}
	if !decision.Accept {
		return nil, &DomainError{Code: "DUPLICATE_LEAD", Message: "lead with this email already exists for the website source"}
	}

	// Fire-and-forget: a notification failure must never fail the
	// ingestion call that triggered it.
	if uc.Publisher != nil {
		if err := uc.Publisher.PublishLeadCreated(ctx, lead); err != nil {
			log.Printf("⚠️ Failed to publish lead notification: %v", err)
		}
	}

	return lead, nil
}
