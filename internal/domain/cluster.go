package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for DuplicateCluster
var (
	ErrEmptyClusterPrimaryID = errors.New("cluster primary ID cannot be empty")
	ErrEmptyClusterMembers   = errors.New("cluster must contain at least one reference")
	ErrPrimaryNotMember      = errors.New("cluster primary must be one of its members")
)

// DuplicateCluster is a set of reference IDs judged to represent the
// same underlying work, with one member designated as the primary.
// Clusters produced by a deduplication run partition the input set:
// every reference belongs to exactly one cluster.
type DuplicateCluster struct {
	PrimaryID    uuid.UUID   `json:"primary_id"`
	ReferenceIDs []uuid.UUID `json:"reference_ids"`
}

// Size returns the number of references in the cluster.
func (c *DuplicateCluster) Size() int {
	return len(c.ReferenceIDs)
}

// Contains reports whether the given reference ID is a member of the cluster.
func (c *DuplicateCluster) Contains(id uuid.UUID) bool {
	for _, member := range c.ReferenceIDs {
		if member == id {
			return true
		}
	}
	return false
}

// Validate checks if the DuplicateCluster has valid data.
func (c *DuplicateCluster) Validate() error {
	if c.PrimaryID == uuid.Nil {
		return ErrEmptyClusterPrimaryID
	}

	if len(c.ReferenceIDs) == 0 {
		return ErrEmptyClusterMembers
	}

	if !c.Contains(c.PrimaryID) {
		return ErrPrimaryNotMember
	}

	return nil
}
