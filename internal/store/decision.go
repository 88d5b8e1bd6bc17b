package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

// DecisionStore persists screening decisions keyed by (reference, phase).
//
// Implementations must guarantee at most one record per key: Upsert
// replaces an existing record rather than adding a second one. The core
// performs no locking; hosts with concurrent reviewers must serialize
// writes to the same key (for example with a per-project lock or a
// transactional upsert).
// Version: 1.0
type DecisionStore interface {
	// Get retrieves the decision for a reference and phase.
	// Returns ErrDecisionNotFound when no record has been written for
	// the pair; callers treat that as an implicit pending decision.
	Get(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase) (*domain.ScreeningDecision, error)

	// Upsert writes a decision, replacing any existing record for the
	// same (reference, phase) pair. The decision must be valid
	// according to domain validation rules; implementations return
	// ErrInvalidEntity (wrapped) otherwise.
	Upsert(ctx context.Context, decision *domain.ScreeningDecision) error

	// Delete removes the decision for a reference and phase, returning
	// the pair to its implicit pending state. Deleting a pair without a
	// recorded decision is a no-op, not an error.
	Delete(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase) error

	// ListByReferences returns all recorded decisions for the given
	// reference IDs across both phases, in a stable order. IDs without
	// recorded decisions are simply absent from the result.
	ListByReferences(ctx context.Context, referenceIDs []uuid.UUID) ([]domain.ScreeningDecision, error)
}
