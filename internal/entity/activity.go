package entity

import (
	"context"
	"time"
)

// Activity log actions.
const (
	ActionCreateLead  = "CREATE_LEAD"
	ActionUpdateLead  = "UPDATE_LEAD"
	ActionDeleteLead  = "DELETE_LEAD"
	ActionImportLeads = "IMPORT_LEADS"
	ActionExportLeads = "EXPORT_LEADS"
)

// ActivityLogEntry is an append-only audit record. Entries are never
// mutated and expire 24 hours after creation (purged by the scheduler).
type ActivityLogEntry struct {
	ID          string         `json:"id"`
	UserName    string         `json:"userName"`
	UserEmail   string         `json:"userEmail"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId,omitempty"`
	Description string         `json:"description"`
	IPAddress   string         `json:"ipAddress"`
	UserAgent   string         `json:"userAgent,omitempty"`
	OldData     any            `json:"oldData,omitempty"`
	NewData     any            `json:"newData,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

const ActivityLogTTL = 24 * time.Hour

type ActivityLogRepositoryInterface interface {
	Create(ctx context.Context, entry *ActivityLogEntry) error
	Recent(ctx context.Context, limit int) ([]ActivityLogEntry, error)

	// PurgeExpired deletes entries older than ActivityLogTTL and returns
	// how many rows were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
