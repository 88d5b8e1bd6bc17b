package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
	"github.com/refsift/refsift/internal/platform/clock"
	"github.com/refsift/refsift/internal/platform/logger"
	"github.com/refsift/refsift/internal/store"
)

// Verify interface compliance at compile time
var _ ScreeningService = (*screeningServiceImpl)(nil)

// screeningServiceImpl implements the ScreeningService interface.
type screeningServiceImpl struct {
	refs      store.ReferenceSource
	decisions store.DecisionStore
	clock     clock.Clock
	logger    *slog.Logger
}

// NewScreeningService creates a new ScreeningService implementation.
// The clock and logger may be nil, in which case the system clock and
// the default logger are used.
func NewScreeningService(
	refs store.ReferenceSource,
	decisions store.DecisionStore,
	clk clock.Clock,
	logger *slog.Logger,
) ScreeningService {
	// Validate inputs
	if refs == nil {
		panic("refs cannot be nil")
	}
	if decisions == nil {
		panic("decisions cannot be nil")
	}

	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &screeningServiceImpl{
		refs:      refs,
		decisions: decisions,
		clock:     clk,
		logger:    logger.With(slog.String("component", "screening_service")),
	}
}

// RecordDecision implements ScreeningService.RecordDecision.
func (s *screeningServiceImpl) RecordDecision(
	ctx context.Context,
	referenceID uuid.UUID,
	phase domain.ScreeningPhase,
	req DecisionRequest,
) (*domain.ScreeningDecision, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording screening decision",
		slog.String("reference_id", referenceID.String()),
		slog.String("phase", string(phase)),
		slog.String("verdict", string(req.Verdict)))

	// Validate the request before touching the stores so invalid input
	// never overwrites a recorded verdict.
	if !phase.IsValid() {
		return nil, ErrInvalidPhase
	}
	if !req.Verdict.IsValid() || req.Verdict == domain.VerdictPending {
		log.Warn("invalid verdict submitted",
			slog.String("reference_id", referenceID.String()),
			slog.String("verdict", string(req.Verdict)))
		return nil, ErrInvalidVerdict
	}
	if req.Verdict == domain.VerdictExclude && req.ExclusionReason == "" {
		return nil, ErrMissingExclusionReason
	}

	// The reference must exist in the project corpus.
	if _, err := s.refs.GetByID(ctx, referenceID); err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("decision for unknown reference",
				slog.String("reference_id", referenceID.String()))
			return nil, ErrReferenceNotFound
		}
		log.Error("failed to look up reference",
			slog.String("error", err.Error()),
			slog.String("reference_id", referenceID.String()))
		return nil, NewRecordDecisionError("failed to look up reference", err)
	}

	// A full-text decision requires the reference to have advanced past
	// title/abstract screening.
	if phase == domain.PhaseFullText {
		prior, err := s.decisions.Get(ctx, referenceID, domain.PhaseTitleAbstract)
		if err != nil {
			if store.IsNotFoundError(err) {
				return nil, ErrInvalidTransition
			}
			return nil, NewRecordDecisionError("failed to check title/abstract decision", err)
		}
		if !prior.Verdict.AdvancesToFullText() {
			log.Warn("full-text decision without advancement",
				slog.String("reference_id", referenceID.String()),
				slog.String("title_abstract_verdict", string(prior.Verdict)))
			return nil, ErrInvalidTransition
		}
	}

	// Fetch the existing record, or start a fresh pending decision.
	decision, err := s.decisions.Get(ctx, referenceID, phase)
	if err != nil {
		if !store.IsNotFoundError(err) {
			return nil, NewRecordDecisionError("failed to get decision", err)
		}
		decision, err = domain.NewScreeningDecision(referenceID, phase)
		if err != nil {
			return nil, NewRecordDecisionError("failed to create decision", err)
		}
	}

	if err := decision.Record(req.Verdict, req.ExclusionReason, req.Notes, s.clock.Now()); err != nil {
		if errors.Is(err, domain.ErrInvalidVerdict) {
			return nil, ErrInvalidVerdict
		}
		if errors.Is(err, domain.ErrMissingExclusionReason) {
			return nil, ErrMissingExclusionReason
		}
		return nil, NewRecordDecisionError("failed to apply verdict", err)
	}

	if err := s.decisions.Upsert(ctx, decision); err != nil {
		log.Error("failed to store decision",
			slog.String("error", err.Error()),
			slog.String("reference_id", referenceID.String()),
			slog.String("phase", string(phase)))
		return nil, NewRecordDecisionError("failed to store decision", err)
	}

	// A title/abstract verdict that no longer advances the reference
	// invalidates any full-text decision recorded under the old verdict.
	// Resetting it here keeps the flow counts consistent: a reference
	// excluded at title/abstract cannot remain full-text assessed.
	if phase == domain.PhaseTitleAbstract && !decision.Verdict.AdvancesToFullText() {
		if err := s.decisions.Delete(ctx, referenceID, domain.PhaseFullText); err != nil {
			log.Error("failed to reset full-text decision",
				slog.String("error", err.Error()),
				slog.String("reference_id", referenceID.String()))
			return nil, NewRecordDecisionError("failed to reset full-text decision", err)
		}
	}

	log.Debug("screening decision recorded",
		slog.String("reference_id", referenceID.String()),
		slog.String("phase", string(phase)),
		slog.String("verdict", string(decision.Verdict)))
	return decision, nil
}

// GetDecision implements ScreeningService.GetDecision.
func (s *screeningServiceImpl) GetDecision(
	ctx context.Context,
	referenceID uuid.UUID,
	phase domain.ScreeningPhase,
) (*domain.ScreeningDecision, error) {
	if !phase.IsValid() {
		return nil, ErrInvalidPhase
	}

	if _, err := s.refs.GetByID(ctx, referenceID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReferenceNotFound
		}
		return nil, NewGetDecisionError("failed to look up reference", err)
	}

	decision, err := s.decisions.Get(ctx, referenceID, phase)
	if err != nil {
		if store.IsNotFoundError(err) {
			// No record means the reference is still pending at this phase.
			return domain.NewScreeningDecision(referenceID, phase)
		}
		return nil, NewGetDecisionError("failed to get decision", err)
	}
	return decision, nil
}

// ListDecisions implements ScreeningService.ListDecisions.
func (s *screeningServiceImpl) ListDecisions(
	ctx context.Context,
	referenceIDs []uuid.UUID,
) ([]domain.ScreeningDecision, error) {
	decisions, err := s.decisions.ListByReferences(ctx, referenceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	return decisions, nil
}
