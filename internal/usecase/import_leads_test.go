package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

// Mirrors the canonical spreadsheet case: three rows, one missing its
// email, one colliding with an already imported lead.
func TestImportLeadsMixedBatch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", ctx, "fresh@example.com", entity.SourceImport).Return(nil, nil)
	repo.On("FindByEmailSource", ctx, "known@example.com", entity.SourceImport).
		Return(&entity.Lead{ID: "lead-1"}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	activity := new(MockActivityLogRepository)
	activity.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(usecase.NewDuplicateResolver(repo), activity)
	result := uc.Execute(ctx, []map[string]any{
		{"Full Name": "Fresh Lead", "Email": "fresh@example.com"},
		{"Full Name": "No Email Given"},
		{"Full Name": "Known Lead", "Email": "known@example.com"},
	}, usecase.Actor{Name: "Ops"})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestImportLeadsWritesAuditEntry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	activity := new(MockActivityLogRepository)
	activity.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(usecase.NewDuplicateResolver(repo), activity)
	uc.Execute(ctx, []map[string]any{
		{"name": "Audited", "email": "audited@example.com"},
	}, usecase.Actor{Name: "Importer", Email: "ops@urbancruise.in"})

	activity.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(e *entity.ActivityLogEntry) bool {
		return e.Action == entity.ActionImportLeads && e.UserName == "Importer"
	}))
}

func TestImportLeadsAnonymousActorDefaultsToSystem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	activity := new(MockActivityLogRepository)
	activity.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(usecase.NewDuplicateResolver(repo), activity)
	uc.Execute(ctx, []map[string]any{
		{"name": "Lead", "email": "lead@example.com"},
	}, usecase.Actor{})

	activity.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(e *entity.ActivityLogEntry) bool {
		return e.UserName == "System" && e.UserEmail == "system@urbancruise.in"
	}))
}
