package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// ImportLeadsUseCase ingests rows parsed from an uploaded CSV/XLSX file.
// Rows carrying their own source column keep it; the rest fall back to
// "import".
type ImportLeadsUseCase struct {
	Resolver    *DuplicateResolver
	ActivityLog entity.ActivityLogRepositoryInterface
}

func NewImportLeadsUseCase(resolver *DuplicateResolver, activityLog entity.ActivityLogRepositoryInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Resolver: resolver, ActivityLog: activityLog}
}

func (uc *ImportLeadsUseCase) Execute(ctx context.Context, rows []map[string]any, actor Actor) IngestResult {
	result := ingestBatch(ctx, uc.Resolver, rows, entity.SourceImport)

	if uc.ActivityLog != nil {
		actor = actor.orSystem()
		entry := &entity.ActivityLogEntry{
			ID:          uuid.New().String(),
			UserName:    actor.Name,
			UserEmail:   actor.Email,
			Action:      entity.ActionImportLeads,
			EntityType:  "LEAD",
			Description: fmt.Sprintf("Imported %d leads from file (%d skipped)", result.Imported, result.Skipped),
			IPAddress:   actor.IPAddress,
			UserAgent:   actor.UserAgent,
			Metadata:    map[string]any{"imported": result.Imported, "skipped": result.Skipped, "total": result.Total},
			CreatedAt:   time.Now(),
		}
		if err := uc.ActivityLog.Create(ctx, entry); err != nil {
			log.Printf("⚠️ Failed to write activity log: %v", err)
		}
	}

	return result
}
