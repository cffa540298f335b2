package entity

import (
	"context"
	"errors"
	"time"
)

// Lead sources. A lead is unique per (email, source): the same email may
// legitimately show up once per channel.
const (
	SourceWebsite   = "website"
	SourceMeta      = "meta"
	SourceGoogle    = "google"
	SourceImport    = "import"
	SourceURLImport = "url_import"
)

// Lead statuses. Transitions are unconstrained on purpose.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

var (
	ErrDuplicateLead = errors.New("lead with this email and source already exists")
	ErrLeadNotFound  = errors.New("lead not found")
)

type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Service      string    `json:"service,omitempty"`
	Vehicle      string    `json:"vehicle,omitempty"`
	City         string    `json:"city,omitempty"`
	RentalDays   string    `json:"rentalDays,omitempty"`
	RentalMonths string    `json:"rentalMonths,omitempty"`
	Source       string    `json:"source"`
	Campaign     string    `json:"campaign,omitempty"`
	Keyword      string    `json:"keyword,omitempty"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assignedTo,omitempty"`
	Notes        []string  `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidSource(s string) bool {
	switch s {
	case SourceWebsite, SourceMeta, SourceGoogle, SourceImport, SourceURLImport:
		return true
	}
	return false
}

// LeadFilter narrows list and export queries. Zero values mean "no filter".
type LeadFilter struct {
	Source   string
	Status   string
	DateFrom time.Time
	DateTo   time.Time
	Search   string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)

	// FindByEmailSource returns (nil, nil) when no lead matches.
	FindByEmailSource(ctx context.Context, email, source string) (*Lead, error)

	// FindByEmailOrPhone is the manual-create conflict check: email matches
	// any source, phone matches any existing lead. (nil, nil) on no match.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*Lead, error)

	List(ctx context.Context, filter LeadFilter, page, limit int) ([]Lead, int, error)
	FindAll(ctx context.Context, filter LeadFilter) ([]Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Assign(ctx context.Context, id, userID string) (*Lead, error)
	Delete(ctx context.Context, id string) (*Lead, error)
}
