package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Reference
var (
	ErrEmptyReferenceID        = errors.New("reference ID cannot be empty")
	ErrEmptyReferenceProjectID = errors.New("reference project ID cannot be empty")
	ErrEmptyReferenceTitle     = errors.New("reference title cannot be empty")
)

// Reference represents a project-scoped bibliographic record imported
// from an external source. Its bibliographic fields are immutable to the
// core: deduplication and screening read them but never write them back.
// Year is 0 when the publication year is unknown.
type Reference struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Title      string    `json:"title"`
	Authors    []string  `json:"authors,omitempty"`
	Year       int       `json:"year,omitempty"`
	DOI        string    `json:"doi,omitempty"`
	PMID       string    `json:"pmid,omitempty"`
	ImportedAt time.Time `json:"imported_at"`
}

// NewReference creates a new Reference for the given project with the
// given title. It generates a new UUID for the reference ID and stamps
// the import timestamp. Optional identifying fields (authors, year, DOI,
// PMID) are set by the caller afterwards.
// Returns an error if validation fails.
func NewReference(projectID uuid.UUID, title string) (*Reference, error) {
	ref := &Reference{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Title:      title,
		ImportedAt: time.Now().UTC(),
	}

	if err := ref.Validate(); err != nil {
		return nil, err
	}

	return ref, nil
}

// Validate checks if the Reference has valid data.
// A reference with no year, no authors, and no identifiers is valid
// input; only identity and title are required.
func (r *Reference) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReferenceID
	}

	if r.ProjectID == uuid.Nil {
		return ErrEmptyReferenceProjectID
	}

	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyReferenceTitle
	}

	return nil
}
