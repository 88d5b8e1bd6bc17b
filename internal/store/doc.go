// Package store defines interfaces for data access operations.
// These interfaces abstract the underlying storage mechanism from the
// core's screening and reporting logic, allowing business rules to
// remain independent of how the host application persists records.
package store
