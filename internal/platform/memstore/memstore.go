// Package memstore provides in-memory implementations of the store
// contracts. Durable persistence belongs to the host application; this
// package backs the core's tests and serves embedders that keep review
// state in process.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
	"github.com/refsift/refsift/internal/store"
)

// Compile-time interface compliance checks
var (
	_ store.ReferenceSource = (*ReferenceSource)(nil)
	_ store.DecisionStore   = (*DecisionStore)(nil)
)

// ReferenceSource is a mutex-guarded, map-backed store.ReferenceSource.
// Safe for concurrent use.
type ReferenceSource struct {
	mu   sync.RWMutex
	refs map[uuid.UUID]domain.Reference
}

// NewReferenceSource creates a ReferenceSource seeded with the given
// references. Seeding panics on invalid references; use Add for
// validated insertion.
func NewReferenceSource(refs ...domain.Reference) *ReferenceSource {
	s := &ReferenceSource{refs: make(map[uuid.UUID]domain.Reference, len(refs))}
	for _, ref := range refs {
		if err := s.Add(ref); err != nil {
			panic(fmt.Sprintf("memstore: seeding invalid reference: %v", err))
		}
	}
	return s
}

// Add inserts or replaces a reference.
// Returns a wrapped store.ErrInvalidEntity if the reference is invalid.
func (s *ReferenceSource) Add(ref domain.Reference) error {
	if err := ref.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[ref.ID] = ref
	return nil
}

// GetByID implements store.ReferenceSource.
func (s *ReferenceSource) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.refs[id]
	if !ok {
		return nil, store.ErrReferenceNotFound
	}
	return &ref, nil
}

// ListByProject implements store.ReferenceSource. Results are ordered
// by import time, then ID, so repeated calls are stable.
func (s *ReferenceSource) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]domain.Reference, 0)
	for _, ref := range s.refs {
		if ref.ProjectID == projectID {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].ImportedAt.Equal(refs[j].ImportedAt) {
			return refs[i].ImportedAt.Before(refs[j].ImportedAt)
		}
		return refs[i].ID.String() < refs[j].ID.String()
	})
	return refs, nil
}

// decisionKey identifies one decision record.
type decisionKey struct {
	referenceID uuid.UUID
	phase       domain.ScreeningPhase
}

// DecisionStore is a mutex-guarded, map-backed store.DecisionStore.
// Safe for concurrent use; the at-most-one-record-per-key invariant
// falls out of the map representation.
type DecisionStore struct {
	mu        sync.RWMutex
	decisions map[decisionKey]domain.ScreeningDecision
}

// NewDecisionStore creates an empty DecisionStore.
func NewDecisionStore() *DecisionStore {
	return &DecisionStore{decisions: make(map[decisionKey]domain.ScreeningDecision)}
}

// Get implements store.DecisionStore.
func (s *DecisionStore) Get(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase) (*domain.ScreeningDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decision, ok := s.decisions[decisionKey{referenceID: referenceID, phase: phase}]
	if !ok {
		return nil, store.ErrDecisionNotFound
	}
	return &decision, nil
}

// Upsert implements store.DecisionStore.
func (s *DecisionStore) Upsert(ctx context.Context, decision *domain.ScreeningDecision) error {
	if decision == nil {
		return fmt.Errorf("%w: nil decision", store.ErrInvalidEntity)
	}
	if err := decision.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions[decisionKey{referenceID: decision.ReferenceID, phase: decision.Phase}] = *decision
	return nil
}

// Delete implements store.DecisionStore. Deleting an absent pair is a
// no-op.
func (s *DecisionStore) Delete(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decisions, decisionKey{referenceID: referenceID, phase: phase})
	return nil
}

// ListByReferences implements store.DecisionStore. For each reference
// the title/abstract decision precedes the full-text one.
func (s *DecisionStore) ListByReferences(ctx context.Context, referenceIDs []uuid.UUID) ([]domain.ScreeningDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decisions := make([]domain.ScreeningDecision, 0, len(referenceIDs))
	for _, id := range referenceIDs {
		for _, phase := range []domain.ScreeningPhase{domain.PhaseTitleAbstract, domain.PhaseFullText} {
			if decision, ok := s.decisions[decisionKey{referenceID: id, phase: phase}]; ok {
				decisions = append(decisions, decision)
			}
		}
	}
	return decisions, nil
}
