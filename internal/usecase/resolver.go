package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// Decision is the resolver verdict for a single candidate.
type Decision struct {
	Accept     bool
	SkipReason string
}

const SkipDuplicate = "duplicate"

// DuplicateResolver decides whether a normalized candidate may enter
// storage. The rule is exact-match on (email, source): no fuzzy matching,
// no phone matching on the automated paths.
type DuplicateResolver struct {
	Repo entity.LeadRepositoryInterface
}

func NewDuplicateResolver(repo entity.LeadRepositoryInterface) *DuplicateResolver {
	return &DuplicateResolver{Repo: repo}
}

// Resolve looks up (candidate.email, candidate.source). A lookup failure
// propagates: it aborts this candidate, not the batch around it.
func (r *DuplicateResolver) Resolve(ctx context.Context, candidate *entity.Lead) (Decision, error) {
	existing, err := r.Repo.FindByEmailSource(ctx, candidate.Email, candidate.Source)
	if err != nil {
		return Decision{}, fmt.Errorf("dedup lookup failed: %w", err)
	}
	if existing != nil {
		return Decision{SkipReason: SkipDuplicate}, nil
	}
	return Decision{Accept: true}, nil
}

// Store runs Resolve and persists accepted candidates. The (email, source)
// unique index is the backstop for the non-atomic check-then-insert: a
// concurrent writer racing us surfaces as ErrDuplicateLead, which is
// treated the same as a Skip.
func (r *DuplicateResolver) Store(ctx context.Context, candidate *entity.Lead) (Decision, error) {
	decision, err := r.Resolve(ctx, candidate)
	if err != nil || !decision.Accept {
		return decision, err
	}

	if err := r.Repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, entity.ErrDuplicateLead) {
			return Decision{SkipReason: SkipDuplicate}, nil
		}
		return Decision{}, err
	}

	return decision, nil
}
