package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScreeningPhase identifies one of the two sequential review phases.
type ScreeningPhase string

// Possible screening phase values
const (
	PhaseTitleAbstract ScreeningPhase = "title_abstract"
	PhaseFullText      ScreeningPhase = "full_text"
)

// Verdict represents a reviewer's decision outcome for a reference at a
// given phase.
type Verdict string

// Possible verdict values
const (
	VerdictPending Verdict = "pending"
	VerdictInclude Verdict = "include"
	VerdictExclude Verdict = "exclude"
	VerdictMaybe   Verdict = "maybe"
)

// Common validation errors for ScreeningDecision
var (
	ErrEmptyDecisionReferenceID = errors.New("decision reference ID cannot be empty")
	ErrInvalidScreeningPhase    = errors.New("invalid screening phase")
	ErrInvalidVerdict           = errors.New("invalid verdict")
	ErrMissingExclusionReason   = errors.New("exclude verdict requires an exclusion reason")
)

// IsValid checks if the phase is one of the two defined screening phases.
func (p ScreeningPhase) IsValid() bool {
	switch p {
	case PhaseTitleAbstract, PhaseFullText:
		return true
	default:
		return false
	}
}

// IsValid checks if the verdict is one of the defined verdict values.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictPending, VerdictInclude, VerdictExclude, VerdictMaybe:
		return true
	default:
		return false
	}
}

// AdvancesToFullText reports whether a title/abstract verdict allows the
// reference to proceed to full-text screening.
func (v Verdict) AdvancesToFullText() bool {
	return v == VerdictInclude || v == VerdictMaybe
}

// ScreeningDecision records a reviewer verdict for one reference in one
// phase. At most one decision exists per (reference, phase) pair; later
// writes replace the record rather than duplicating it. DecidedAt is nil
// while the decision is pending and is set on every transition out of
// pending, including re-recorded verdicts.
type ScreeningDecision struct {
	ReferenceID     uuid.UUID      `json:"reference_id"`
	Phase           ScreeningPhase `json:"phase"`
	Verdict         Verdict        `json:"verdict"`
	ExclusionReason string         `json:"exclusion_reason,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	DecidedAt       *time.Time     `json:"decided_at,omitempty"`
}

// NewScreeningDecision creates a pending decision for the given
// reference and phase. Decisions start pending; a verdict is applied
// through Record.
// Returns an error if validation fails.
func NewScreeningDecision(referenceID uuid.UUID, phase ScreeningPhase) (*ScreeningDecision, error) {
	decision := &ScreeningDecision{
		ReferenceID: referenceID,
		Phase:       phase,
		Verdict:     VerdictPending,
	}

	if err := decision.Validate(); err != nil {
		return nil, err
	}

	return decision, nil
}

// Validate checks if the ScreeningDecision has valid data.
func (d *ScreeningDecision) Validate() error {
	if d.ReferenceID == uuid.Nil {
		return ErrEmptyDecisionReferenceID
	}

	if !d.Phase.IsValid() {
		return ErrInvalidScreeningPhase
	}

	if !d.Verdict.IsValid() {
		return ErrInvalidVerdict
	}

	if d.Verdict == VerdictExclude && strings.TrimSpace(d.ExclusionReason) == "" {
		return ErrMissingExclusionReason
	}

	return nil
}

// Decided reports whether a verdict has been recorded for this phase.
func (d *ScreeningDecision) Decided() bool {
	return d.Verdict != VerdictPending
}

// Record applies a reviewer verdict to the decision and stamps DecidedAt
// with the given time. Pending is not a recordable verdict; an exclude
// verdict requires a non-empty reason. On any validation error the
// decision is left unchanged.
func (d *ScreeningDecision) Record(verdict Verdict, reason, notes string, now time.Time) error {
	if !verdict.IsValid() || verdict == VerdictPending {
		return ErrInvalidVerdict
	}

	if verdict == VerdictExclude && strings.TrimSpace(reason) == "" {
		return ErrMissingExclusionReason
	}

	if verdict != VerdictExclude {
		reason = ""
	}

	d.Verdict = verdict
	d.ExclusionReason = reason
	d.Notes = notes
	decidedAt := now.UTC()
	d.DecidedAt = &decidedAt
	return nil
}
