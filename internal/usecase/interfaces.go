package usecase

import (
	"context"
	"time"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// LeadPoller is the shape every automated source adapter implements.
// FetchRaw is a full-scan poll: repeated calls against an unchanged
// upstream are made idempotent by the resolver, not by the poller.
type LeadPoller interface {
	Source() string
	IsConfigured() bool
	FetchRaw(ctx context.Context) ([]map[string]any, error)
}

// NotificationPublisher hands a freshly stored lead to the notification
// pipeline. Fire-and-forget: a publish failure must never fail the
// ingestion call that triggered it.
type NotificationPublisher interface {
	PublishLeadCreated(ctx context.Context, lead *entity.Lead) error
}

type EmailService interface {
	SendNewLeadAlert(lead *entity.Lead) error
	SendDailySummary(summary SummaryData) error
}

type SMSService interface {
	Send(to, body string) error
}

// IngestResult aggregates one adapter run.
type IngestResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// SyncResult is the orchestrator's per-poller outcome.
type SyncResult struct {
	Source   string `json:"source"`
	Message  string `json:"message"`
	Found    int    `json:"found"`
	Imported int    `json:"newLeads"`
	Skipped  int    `json:"skipped"`
}

type SummaryData struct {
	Date      time.Time
	Total     int
	New       int
	Converted int
	BySource  map[string]int
}

type CreateLeadInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Service      string   `json:"service"`
	Vehicle      string   `json:"vehicle"`
	City         string   `json:"city"`
	RentalDays   string   `json:"rentalDays"`
	RentalMonths string   `json:"rentalMonths"`
	Source       string   `json:"source"`
	Campaign     string   `json:"campaign"`
	Keyword      string   `json:"keyword"`
	Status       string   `json:"status"`
	Notes        []string `json:"notes"`
}

type WebsiteLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	City    string `json:"city"`
	Message string `json:"message"`
}
