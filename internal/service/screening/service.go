// Package screening implements the two-phase screening workflow:
// title/abstract review followed by full-text review. The service
// enforces phase ordering and exclusion reason rules on top of the
// decision store.
package screening

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

// DecisionRequest carries a reviewer's verdict for one reference at one
// phase.
type DecisionRequest struct {
	Verdict         domain.Verdict `json:"verdict"`
	ExclusionReason string         `json:"exclusion_reason,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// ScreeningService provides methods to record and query screening
// decisions while enforcing workflow rules.
type ScreeningService interface {
	// RecordDecision records a verdict for a reference at the given
	// phase, creating or replacing the stored decision.
	//
	// Workflow rules enforced:
	//   - Full-text decisions require the reference to have an include
	//     or maybe verdict at the title/abstract phase; otherwise
	//     ErrInvalidTransition is returned.
	//   - An exclude verdict requires a non-empty exclusion reason;
	//     otherwise ErrMissingExclusionReason is returned.
	//   - Pending is not a recordable verdict; ErrInvalidVerdict is
	//     returned for it and for unknown verdicts.
	//   - Re-recording a title/abstract verdict that no longer advances
	//     the reference (exclude, or back to a non-advancing state)
	//     resets any recorded full-text decision, so the reference
	//     cannot stay full-text assessed after losing eligibility.
	//
	// Returns the stored decision on success, ErrReferenceNotFound when
	// the reference does not exist, or ErrInvalidPhase for an unknown
	// phase.
	RecordDecision(
		ctx context.Context,
		referenceID uuid.UUID,
		phase domain.ScreeningPhase,
		req DecisionRequest,
	) (*domain.ScreeningDecision, error)

	// GetDecision returns the decision for a reference at a phase. When
	// no verdict has been recorded a pending decision is synthesized, so
	// callers always observe a well-formed decision for a valid pair.
	GetDecision(
		ctx context.Context,
		referenceID uuid.UUID,
		phase domain.ScreeningPhase,
	) (*domain.ScreeningDecision, error)

	// ListDecisions returns all recorded decisions for the given
	// references across both phases, in a stable order.
	ListDecisions(ctx context.Context, referenceIDs []uuid.UUID) ([]domain.ScreeningDecision, error)
}

// Common error types for ScreeningService
var (
	// ErrReferenceNotFound indicates that the reference does not exist.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrInvalidTransition indicates a full-text decision was attempted
	// for a reference that did not pass title/abstract screening.
	ErrInvalidTransition = errors.New("reference has not advanced to full-text screening")

	// ErrInvalidPhase indicates an unknown screening phase was provided.
	ErrInvalidPhase = errors.New("invalid screening phase")

	// ErrInvalidVerdict indicates the verdict is unknown or pending.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrMissingExclusionReason indicates an exclude verdict was
	// submitted without a reason.
	ErrMissingExclusionReason = errors.New("exclude verdict requires an exclusion reason")
)

// ServiceError wraps errors from the screening service with additional
// context. This allows consumers to differentiate between different
// types of service errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_decision")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordDecisionError returns a new ServiceError for the record_decision operation.
func NewRecordDecisionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_decision",
		Message:   message,
		Err:       err,
	}
}

// NewGetDecisionError returns a new ServiceError for the get_decision operation.
func NewGetDecisionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_decision",
		Message:   message,
		Err:       err,
	}
}
