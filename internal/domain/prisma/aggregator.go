// Package prisma derives PRISMA flow reporting counts from the current
// reference, cluster, and decision state. The computation is a pure
// function: results are never cached or persisted, so the report cannot
// drift from the state it was derived from.
package prisma

import (
	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

// ComputeFlowCounts computes the four-stage PRISMA counts for a review.
//
// Identification counts the raw imports and the duplicates collapsed by
// clustering. The screening, eligibility, and inclusion stages count
// cluster primaries only: a non-pending title/abstract verdict means the
// record was screened, and a non-pending full-text verdict means it was
// assessed. Empty input is a valid degenerate case yielding zero counts.
func ComputeFlowCounts(
	refs []domain.Reference,
	clusters []domain.DuplicateCluster,
	decisions []domain.ScreeningDecision,
) domain.PrismaFlowCounts {
	var counts domain.PrismaFlowCounts

	counts.Identification.RecordsIdentified = len(refs)

	primaries := make(map[uuid.UUID]bool, len(clusters))
	duplicatesRemoved := 0
	for _, cluster := range clusters {
		if cluster.Size() > 0 {
			duplicatesRemoved += cluster.Size() - 1
		}
		primaries[cluster.PrimaryID] = true
	}
	counts.Identification.DuplicatesRemoved = duplicatesRemoved
	counts.Identification.RecordsAfterDuplicates = len(refs) - duplicatesRemoved

	for _, decision := range decisions {
		// Only primaries are screened; pending records have not entered
		// the counts yet.
		if !primaries[decision.ReferenceID] || !decision.Decided() {
			continue
		}
		switch decision.Phase {
		case domain.PhaseTitleAbstract:
			counts.Screening.RecordsScreened++
			if decision.Verdict == domain.VerdictExclude {
				counts.Screening.RecordsExcluded++
			}
		case domain.PhaseFullText:
			counts.Eligibility.FullTextAssessed++
			if decision.Verdict == domain.VerdictExclude {
				counts.Eligibility.FullTextExcluded++
			}
			if decision.Verdict == domain.VerdictInclude {
				counts.Inclusion.StudiesIncluded++
			}
		}
	}

	return counts
}
