// Package dedup implements duplicate detection for bibliographic
// references: identity normalization, pluggable title similarity
// scoring, and a union-find clustering engine with blocked fuzzy
// matching. The engine is pure with respect to its inputs and safe to
// re-run; deduplicating an already-deduplicated set yields singleton
// clusters.
package dedup
