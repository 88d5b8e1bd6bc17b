package prisma

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/refsift/refsift/internal/domain"
)

func singleton(id uuid.UUID) domain.DuplicateCluster {
	return domain.DuplicateCluster{PrimaryID: id, ReferenceIDs: []uuid.UUID{id}}
}

func decided(refID uuid.UUID, phase domain.ScreeningPhase, verdict domain.Verdict, reason string) domain.ScreeningDecision {
	now := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	return domain.ScreeningDecision{
		ReferenceID:     refID,
		Phase:           phase,
		Verdict:         verdict,
		ExclusionReason: reason,
		DecidedAt:       &now,
	}
}

func TestComputeFlowCountsEmptyInput(t *testing.T) {
	t.Parallel() // Enable parallel execution
	counts := ComputeFlowCounts(nil, nil, nil)

	if counts != (domain.PrismaFlowCounts{}) {
		t.Errorf("Expected zero counts for empty input, got %+v", counts)
	}
	if err := counts.Validate(); err != nil {
		t.Errorf("Expected zero counts to validate, got %v", err)
	}
}

func TestComputeFlowCountsIdentification(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Five imports where two were clustered together: one duplicate
	// removed, four records remain.
	ids := make([]uuid.UUID, 5)
	refs := make([]domain.Reference, 5)
	for i := range ids {
		ids[i] = uuid.New()
		refs[i] = domain.Reference{ID: ids[i], ProjectID: uuid.New(), Title: "t"}
	}
	clusters := []domain.DuplicateCluster{
		singleton(ids[0]),
		{PrimaryID: ids[1], ReferenceIDs: []uuid.UUID{ids[1], ids[3]}},
		singleton(ids[2]),
		singleton(ids[4]),
	}

	counts := ComputeFlowCounts(refs, clusters, nil)

	if counts.Identification.RecordsIdentified != 5 {
		t.Errorf("Expected 5 records identified, got %d", counts.Identification.RecordsIdentified)
	}
	if counts.Identification.DuplicatesRemoved != 1 {
		t.Errorf("Expected 1 duplicate removed, got %d", counts.Identification.DuplicatesRemoved)
	}
	if counts.Identification.RecordsAfterDuplicates != 4 {
		t.Errorf("Expected 4 records after duplicates, got %d", counts.Identification.RecordsAfterDuplicates)
	}
}

func TestComputeFlowCountsFullScenario(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Four unique references: two excluded at title/abstract, two
	// proceed to full text with verdicts include and exclude.
	ids := make([]uuid.UUID, 4)
	refs := make([]domain.Reference, 4)
	clusters := make([]domain.DuplicateCluster, 4)
	for i := range ids {
		ids[i] = uuid.New()
		refs[i] = domain.Reference{ID: ids[i], ProjectID: uuid.New(), Title: "t"}
		clusters[i] = singleton(ids[i])
	}

	decisions := []domain.ScreeningDecision{
		decided(ids[0], domain.PhaseTitleAbstract, domain.VerdictExclude, "wrong design"),
		decided(ids[1], domain.PhaseTitleAbstract, domain.VerdictExclude, "wrong population"),
		decided(ids[2], domain.PhaseTitleAbstract, domain.VerdictInclude, ""),
		decided(ids[3], domain.PhaseTitleAbstract, domain.VerdictMaybe, ""),
		decided(ids[2], domain.PhaseFullText, domain.VerdictInclude, ""),
		decided(ids[3], domain.PhaseFullText, domain.VerdictExclude, "no control group"),
	}

	counts := ComputeFlowCounts(refs, clusters, decisions)

	if counts.Screening.RecordsScreened != 4 {
		t.Errorf("Expected 4 records screened, got %d", counts.Screening.RecordsScreened)
	}
	if counts.Screening.RecordsExcluded != 2 {
		t.Errorf("Expected 2 records excluded, got %d", counts.Screening.RecordsExcluded)
	}
	if counts.Eligibility.FullTextAssessed != 2 {
		t.Errorf("Expected 2 full texts assessed, got %d", counts.Eligibility.FullTextAssessed)
	}
	if counts.Eligibility.FullTextExcluded != 1 {
		t.Errorf("Expected 1 full text excluded, got %d", counts.Eligibility.FullTextExcluded)
	}
	if counts.Inclusion.StudiesIncluded != 1 {
		t.Errorf("Expected 1 study included, got %d", counts.Inclusion.StudiesIncluded)
	}
	if err := counts.Validate(); err != nil {
		t.Errorf("Expected consistent counts, got %v", err)
	}
}

func TestComputeFlowCountsIgnoresNonPrimaries(t *testing.T) {
	t.Parallel() // Enable parallel execution
	primary := uuid.New()
	duplicate := uuid.New()
	refs := []domain.Reference{
		{ID: primary, ProjectID: uuid.New(), Title: "t"},
		{ID: duplicate, ProjectID: uuid.New(), Title: "t"},
	}
	clusters := []domain.DuplicateCluster{
		{PrimaryID: primary, ReferenceIDs: []uuid.UUID{primary, duplicate}},
	}
	// A decision recorded against the duplicate must not count.
	decisions := []domain.ScreeningDecision{
		decided(duplicate, domain.PhaseTitleAbstract, domain.VerdictInclude, ""),
	}

	counts := ComputeFlowCounts(refs, clusters, decisions)
	if counts.Screening.RecordsScreened != 0 {
		t.Errorf("Expected decisions on non-primaries to be ignored, got %d screened",
			counts.Screening.RecordsScreened)
	}
}

func TestComputeFlowCountsIgnoresPending(t *testing.T) {
	t.Parallel() // Enable parallel execution
	id := uuid.New()
	refs := []domain.Reference{{ID: id, ProjectID: uuid.New(), Title: "t"}}
	clusters := []domain.DuplicateCluster{singleton(id)}
	// A pending record exists but no verdict has been recorded: the
	// reference has not entered the screened counts.
	decisions := []domain.ScreeningDecision{
		{ReferenceID: id, Phase: domain.PhaseTitleAbstract, Verdict: domain.VerdictPending},
	}

	counts := ComputeFlowCounts(refs, clusters, decisions)
	if counts.Screening.RecordsScreened != 0 {
		t.Errorf("Expected pending decisions not to count as screened, got %d",
			counts.Screening.RecordsScreened)
	}
}
