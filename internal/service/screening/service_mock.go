package screening

import (
	"context"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

// MockScreeningService is a mock implementation of the ScreeningService interface for testing.
type MockScreeningService struct {
	RecordDecisionFunc func(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase, req DecisionRequest) (*domain.ScreeningDecision, error)
	GetDecisionFunc    func(ctx context.Context, referenceID uuid.UUID, phase domain.ScreeningPhase) (*domain.ScreeningDecision, error)
	ListDecisionsFunc  func(ctx context.Context, referenceIDs []uuid.UUID) ([]domain.ScreeningDecision, error)
}

// RecordDecision records a verdict for a reference at a phase.
func (m *MockScreeningService) RecordDecision(
	ctx context.Context,
	referenceID uuid.UUID,
	phase domain.ScreeningPhase,
	req DecisionRequest,
) (*domain.ScreeningDecision, error) {
	if m.RecordDecisionFunc != nil {
		return m.RecordDecisionFunc(ctx, referenceID, phase, req)
	}
	return nil, nil
}

// GetDecision returns the decision for a reference at a phase.
func (m *MockScreeningService) GetDecision(
	ctx context.Context,
	referenceID uuid.UUID,
	phase domain.ScreeningPhase,
) (*domain.ScreeningDecision, error) {
	if m.GetDecisionFunc != nil {
		return m.GetDecisionFunc(ctx, referenceID, phase)
	}
	return nil, nil
}

// ListDecisions returns all recorded decisions for the given references.
func (m *MockScreeningService) ListDecisions(
	ctx context.Context,
	referenceIDs []uuid.UUID,
) ([]domain.ScreeningDecision, error) {
	if m.ListDecisionsFunc != nil {
		return m.ListDecisionsFunc(ctx, referenceIDs)
	}
	return nil, nil
}
