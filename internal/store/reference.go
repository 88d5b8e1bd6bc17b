package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

// ReferenceSource provides read access to a project's reference set.
// References are created by an external import collaborator and are
// immutable to the core; this interface deliberately has no write side.
// Version: 1.0
type ReferenceSource interface {
	// GetByID retrieves a reference by its unique ID.
	// Returns ErrReferenceNotFound if the reference does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reference, error)

	// ListByProject returns every reference imported into the given
	// project, in a stable order. A project without references yields
	// an empty slice, not an error.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Reference, error)
}
