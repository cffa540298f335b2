package usecase

import (
	"context"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// URLFetcher performs the one-shot GET against a caller-supplied URL and
// returns the decoded JSON body.
type URLFetcher interface {
	FetchJSON(ctx context.Context, url string) (any, error)
}

// ImportFromURLUseCase ingests leads from an arbitrary JSON endpoint.
// The body must be a top-level array or an object with a "leads" array;
// anything else is a hard input error.
type ImportFromURLUseCase struct {
	Resolver *DuplicateResolver
	Fetcher  URLFetcher
}

func NewImportFromURLUseCase(resolver *DuplicateResolver, fetcher URLFetcher) *ImportFromURLUseCase {
	return &ImportFromURLUseCase{Resolver: resolver, Fetcher: fetcher}
}

func (uc *ImportFromURLUseCase) Execute(ctx context.Context, url string) (IngestResult, error) {
	if url == "" {
		return IngestResult{}, &DomainError{Code: "VALIDATION_ERROR", Message: "URL is required"}
	}

	data, err := uc.Fetcher.FetchJSON(ctx, url)
	if err != nil {
		return IngestResult{}, &ExternalAPIError{Service: "URL import", Err: err}
	}

	items, ok := extractLeadItems(data)
	if !ok {
		return IngestResult{}, &DomainError{Code: "INVALID_FORMAT", Message: "Invalid data format from URL"}
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, isMap := item.(map[string]any); isMap {
			rows = append(rows, m)
		} else {
			// Non-object entries count as unusable rows.
			rows = append(rows, map[string]any{})
		}
	}

	return ingestBatch(ctx, uc.Resolver, rows, entity.SourceURLImport), nil
}

func extractLeadItems(data any) ([]any, bool) {
	if items, ok := data.([]any); ok {
		return items, true
	}
	if obj, ok := data.(map[string]any); ok {
		if items, ok := obj["leads"].([]any); ok {
			return items, true
		}
	}
	return nil, false
}
