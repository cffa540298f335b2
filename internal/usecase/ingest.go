package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ingestBatch runs raw records through Normalizer + Resolver and persists
// the accepted ones. A single bad record is logged, counted as skipped and
// never aborts the rest of the batch.
func ingestBatch(ctx context.Context, resolver *DuplicateResolver, rows []map[string]any, fallbackSource string) IngestResult {
	result := IngestResult{Total: len(rows)}

	for _, raw := range rows {
		lead, err := Normalize(raw, fallbackSource)
		if err != nil {
			result.Skipped++
			continue
		}

		// Both required before a candidate may enter storage.
		if lead.Name == "" || lead.Email == "" {
			result.Skipped++
			continue
		}

		decision, err := resolver.Store(ctx, lead)
		if err != nil {
			log.Printf("❌ Error importing lead %s: %v", lead.Email, err)
			result.Skipped++
			continue
		}
		if !decision.Accept {
			result.Skipped++
			continue
		}

		result.Imported++
	}

	return result
}

// SyncLeadsUseCase is the ingestion orchestrator for the automated pollers
// (Meta + Google). Website and file/URL import are request-driven and do
// not go through here.
//
// Overlapping runs need no mutual exclusion: every candidate is guarded
// individually by the resolver, so two racing polls can at worst produce
// extra Skip outcomes.
type SyncLeadsUseCase struct {
	Resolver *DuplicateResolver
	Pollers  []LeadPoller
}

func NewSyncLeadsUseCase(resolver *DuplicateResolver, pollers ...LeadPoller) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{Resolver: resolver, Pollers: pollers}
}

// IngestRows pushes externally supplied raw records (e.g. webhook
// payloads) through the same pipeline the pollers use.
func (uc *SyncLeadsUseCase) IngestRows(ctx context.Context, rows []map[string]any, fallbackSource string) IngestResult {
	return ingestBatch(ctx, uc.Resolver, rows, fallbackSource)
}

// RunAdapter runs a single poller to completion.
func (uc *SyncLeadsUseCase) RunAdapter(ctx context.Context, source string) (SyncResult, error) {
	for _, p := range uc.Pollers {
		if p.Source() == source {
			return uc.runPoller(ctx, p)
		}
	}
	return SyncResult{}, &DomainError{
		Code:    "UNKNOWN_SOURCE",
		Message: fmt.Sprintf("no poller registered for source %q", source),
	}
}

// RunAll polls every registered source. Per-poller errors are converted
// into soft zero-new-leads results so a timer tick never crashes.
func (uc *SyncLeadsUseCase) RunAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, 0, len(uc.Pollers))
	for _, p := range uc.Pollers {
		result, err := uc.runPoller(ctx, p)
		if err != nil {
			log.Printf("❌ %s sync error: %v", p.Source(), err)
			result = SyncResult{
				Source:  p.Source(),
				Message: fmt.Sprintf("%s API error occurred", displayName(p.Source())),
			}
		}
		results = append(results, result)
	}
	return results
}

func (uc *SyncLeadsUseCase) runPoller(ctx context.Context, p LeadPoller) (SyncResult, error) {
	if !p.IsConfigured() {
		log.Printf("⚠️ %s API not configured, skipping lead fetch", displayName(p.Source()))
		return SyncResult{
			Source:  p.Source(),
			Message: fmt.Sprintf("%s API not configured", displayName(p.Source())),
		}, nil
	}

	rows, err := p.FetchRaw(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return SyncResult{
				Source:  p.Source(),
				Message: fmt.Sprintf("%s API not configured", displayName(p.Source())),
			}, nil
		}
		return SyncResult{}, &ExternalAPIError{Service: displayName(p.Source()), Err: err}
	}

	result := ingestBatch(ctx, uc.Resolver, rows, p.Source())

	msg := fmt.Sprintf("%s leads fetched: %d found, %d new leads added",
		displayName(p.Source()), result.Total, result.Imported)
	log.Printf("📘 %s", msg)

	return SyncResult{
		Source:   p.Source(),
		Message:  msg,
		Found:    result.Total,
		Imported: result.Imported,
		Skipped:  result.Skipped,
	}, nil
}

func displayName(source string) string {
	if source == "" {
		return source
	}
	return strings.ToUpper(source[:1]) + source[1:]
}
