package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

func syncWithEmptyRepo(pollers ...usecase.LeadPoller) (*usecase.SyncLeadsUseCase, *MockLeadRepository) {
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	return usecase.NewSyncLeadsUseCase(usecase.NewDuplicateResolver(repo), pollers...), repo
}

func TestRunAdapterImportsFetchedLeads(t *testing.T) {
	ctx := context.Background()
	poller := &MockPoller{source: entity.SourceMeta, configured: true}
	poller.On("FetchRaw", ctx).Return([]map[string]any{
		{"name": "Meta One", "email": "one@example.com"},
		{"name": "Meta Two", "email": "two@example.com"},
	}, nil)

	uc, repo := syncWithEmptyRepo(poller)
	result, err := uc.RunAdapter(ctx, entity.SourceMeta)

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceMeta, result.Source)
	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "Meta leads fetched: 2 found, 2 new leads added", result.Message)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

// Polling an unchanged upstream twice must not duplicate anything: the
// second pass resolves every candidate as a skip.
func TestRunAdapterIdempotentAcrossPolls(t *testing.T) {
	ctx := context.Background()
	rows := []map[string]any{
		{"name": "Stable", "email": "stable@example.com"},
	}
	poller := &MockPoller{source: entity.SourceGoogle, configured: true}
	poller.On("FetchRaw", ctx).Return(rows, nil)

	repo := new(MockLeadRepository)
	// First poll: no match. Second poll: the stored lead comes back.
	repo.On("FindByEmailSource", ctx, "stable@example.com", entity.SourceGoogle).
		Return(nil, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	repo.On("FindByEmailSource", ctx, "stable@example.com", entity.SourceGoogle).
		Return(&entity.Lead{ID: "lead-1"}, nil)

	uc := usecase.NewSyncLeadsUseCase(usecase.NewDuplicateResolver(repo), poller)

	first, err := uc.RunAdapter(ctx, entity.SourceGoogle)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Imported)

	second, err := uc.RunAdapter(ctx, entity.SourceGoogle)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Skipped)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestRunAdapterNotConfiguredShortCircuits(t *testing.T) {
	ctx := context.Background()
	poller := &MockPoller{source: entity.SourceMeta, configured: false}

	uc, _ := syncWithEmptyRepo(poller)
	result, err := uc.RunAdapter(ctx, entity.SourceMeta)

	assert.NoError(t, err)
	assert.Equal(t, "Meta API not configured", result.Message)
	assert.Equal(t, 0, result.Found)
	poller.AssertNotCalled(t, "FetchRaw", mock.Anything)
}

func TestRunAdapterUnknownSource(t *testing.T) {
	uc, _ := syncWithEmptyRepo()
	_, err := uc.RunAdapter(context.Background(), "linkedin")

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNKNOWN_SOURCE", domainErr.Code)
}

func TestRunAdapterWrapsUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	poller := &MockPoller{source: entity.SourceMeta, configured: true}
	poller.On("FetchRaw", ctx).Return(nil, errors.New("401 invalid token"))

	uc, _ := syncWithEmptyRepo(poller)
	_, err := uc.RunAdapter(ctx, entity.SourceMeta)

	var apiErr *usecase.ExternalAPIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Meta", apiErr.Service)
}

// A scheduler tick runs every poller; one broken upstream must not take
// the others down.
func TestRunAllConvertsErrorsToSoftResults(t *testing.T) {
	ctx := context.Background()
	broken := &MockPoller{source: entity.SourceMeta, configured: true}
	broken.On("FetchRaw", ctx).Return(nil, errors.New("boom"))
	healthy := &MockPoller{source: entity.SourceGoogle, configured: true}
	healthy.On("FetchRaw", ctx).Return([]map[string]any{
		{"name": "Fine", "email": "fine@example.com"},
	}, nil)

	uc, _ := syncWithEmptyRepo(broken, healthy)
	results := uc.RunAll(ctx)

	assert.Len(t, results, 2)
	assert.Equal(t, "Meta API error occurred", results[0].Message)
	assert.Equal(t, 0, results[0].Imported)
	assert.Equal(t, 1, results[1].Imported)
}

func TestIngestRowsSkipsIncompleteRecords(t *testing.T) {
	ctx := context.Background()
	uc, repo := syncWithEmptyRepo()

	result := uc.IngestRows(ctx, []map[string]any{
		{"name": "Complete", "email": "ok@example.com"},
		{"name": "No Email"},
		{"phone": "9876500000"},
	}, entity.SourceImport)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

// One failing insert must not abort the records behind it.
func TestIngestRowsContinuesPastInsertFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(l *entity.Lead) bool { return l.Email == "bad@example.com" })).
		Return(errors.New("insert failed"))
	repo.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewSyncLeadsUseCase(usecase.NewDuplicateResolver(repo))
	result := uc.IngestRows(ctx, []map[string]any{
		{"name": "Bad", "email": "bad@example.com"},
		{"name": "Good", "email": "good@example.com"},
	}, entity.SourceImport)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}
