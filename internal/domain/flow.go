package domain

import "fmt"

// IdentificationCounts covers the identification stage of the PRISMA
// flow: how many records were imported and how many were removed as
// duplicates.
type IdentificationCounts struct {
	RecordsIdentified      int `json:"records_identified"`
	DuplicatesRemoved      int `json:"duplicates_removed"`
	RecordsAfterDuplicates int `json:"records_after_duplicates"`
}

// ScreeningCounts covers the title/abstract screening stage.
type ScreeningCounts struct {
	RecordsScreened int `json:"records_screened"`
	RecordsExcluded int `json:"records_excluded"`
}

// EligibilityCounts covers the full-text assessment stage.
type EligibilityCounts struct {
	FullTextAssessed int `json:"full_text_assessed"`
	FullTextExcluded int `json:"full_text_excluded"`
}

// InclusionCounts covers the final inclusion stage.
type InclusionCounts struct {
	StudiesIncluded int `json:"studies_included"`
}

// PrismaFlowCounts is a derived, immutable snapshot of the standard
// PRISMA reporting stages. It is never stored as authoritative state:
// callers recompute it from references, clusters, and decisions whenever
// they need current numbers.
type PrismaFlowCounts struct {
	Identification IdentificationCounts `json:"identification"`
	Screening      ScreeningCounts      `json:"screening"`
	Eligibility    EligibilityCounts    `json:"eligibility"`
	Inclusion      InclusionCounts      `json:"inclusion"`
}

// Validate checks the cross-stage consistency of the counts. A snapshot
// computed from a partitioned cluster set and an upsert-only decision
// store satisfies these by construction.
func (c *PrismaFlowCounts) Validate() error {
	id := c.Identification
	if id.RecordsIdentified < 0 || id.DuplicatesRemoved < 0 {
		return fmt.Errorf("identification counts cannot be negative (identified %d, removed %d)",
			id.RecordsIdentified, id.DuplicatesRemoved)
	}
	if id.RecordsAfterDuplicates != id.RecordsIdentified-id.DuplicatesRemoved {
		return fmt.Errorf("records_after_duplicates (%d) must equal identified (%d) minus removed (%d)",
			id.RecordsAfterDuplicates, id.RecordsIdentified, id.DuplicatesRemoved)
	}

	if c.Screening.RecordsScreened > id.RecordsAfterDuplicates {
		return fmt.Errorf("records_screened (%d) exceeds records_after_duplicates (%d)",
			c.Screening.RecordsScreened, id.RecordsAfterDuplicates)
	}
	if c.Screening.RecordsExcluded > c.Screening.RecordsScreened {
		return fmt.Errorf("records_excluded (%d) exceeds records_screened (%d)",
			c.Screening.RecordsExcluded, c.Screening.RecordsScreened)
	}

	if c.Eligibility.FullTextAssessed > c.Screening.RecordsScreened-c.Screening.RecordsExcluded {
		return fmt.Errorf("full_text_assessed (%d) exceeds records passing title/abstract screening (%d)",
			c.Eligibility.FullTextAssessed, c.Screening.RecordsScreened-c.Screening.RecordsExcluded)
	}
	if c.Eligibility.FullTextExcluded > c.Eligibility.FullTextAssessed {
		return fmt.Errorf("full_text_excluded (%d) exceeds full_text_assessed (%d)",
			c.Eligibility.FullTextExcluded, c.Eligibility.FullTextAssessed)
	}

	if c.Inclusion.StudiesIncluded > c.Eligibility.FullTextAssessed {
		return fmt.Errorf("studies_included (%d) exceeds full_text_assessed (%d)",
			c.Inclusion.StudiesIncluded, c.Eligibility.FullTextAssessed)
	}

	return nil
}
