package dedup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/refsift/refsift/internal/domain"
)

// Engine partitions a reference set into duplicate clusters. Matching
// runs in two passes: exact keys (normalized DOI, then PMID) merged by
// transitive closure, then fuzzy title matching within blocking buckets
// for references the exact pass left unmatched. The result is
// deterministic for a given input set regardless of input order or
// worker scheduling.
type Engine struct {
	scorer Scorer
	params *Params
	logger *slog.Logger
}

// NewEngine creates a deduplication engine. A nil scorer selects the
// Jaro-Winkler default, nil params select DefaultParams, and a nil
// logger falls back to slog.Default.
func NewEngine(scorer Scorer, params *Params, logger *slog.Logger) (*Engine, error) {
	if scorer == nil {
		scorer = NewJaroWinklerScorer()
	}
	if params == nil {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dedup params: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		scorer: scorer,
		params: params,
		logger: logger.With(slog.String("component", "dedup_engine")),
	}, nil
}

// normRef caches the normalized identity of one reference for the
// duration of a run.
type normRef struct {
	ref      *domain.Reference
	doi      string
	pmid     string
	title    string
	surnames []string
	fields   int // populated identifying fields, for primary selection
}

// Stats summarizes one deduplication run. SkippedBuckets counts
// blocking buckets that exceeded MaxBlockSize and were excluded from
// fuzzy matching; a non-zero value means the run degraded on a
// degenerate corpus and the host should revisit its blocking inputs or
// raise the limit.
type Stats struct {
	References        int `json:"references"`
	Clusters          int `json:"clusters"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	SkippedBuckets    int `json:"skipped_buckets"`
}

// Deduplicate clusters the given references. The returned clusters
// partition the input: every reference appears in exactly one cluster,
// and a reference without any duplicate forms a singleton. Empty input
// yields an empty slice. The only error cases are invalid input shape
// (a reference failing validation, or two input entries sharing an ID)
// and context cancellation.
func (e *Engine) Deduplicate(ctx context.Context, refs []domain.Reference) ([]domain.DuplicateCluster, error) {
	clusters, _, err := e.DeduplicateWithStats(ctx, refs)
	return clusters, err
}

// DeduplicateWithStats is Deduplicate with a run summary, for hosts
// that need to detect skipped buckets or report run-level numbers.
func (e *Engine) DeduplicateWithStats(ctx context.Context, refs []domain.Reference) ([]domain.DuplicateCluster, Stats, error) {
	if len(refs) == 0 {
		return []domain.DuplicateCluster{}, Stats{}, nil
	}

	// Order by ID up front so that indices, and therefore union-find
	// roots and merge order, do not depend on input ordering.
	ordered := make([]domain.Reference, len(refs))
	copy(ordered, refs)
	sort.Slice(ordered, func(i, j int) bool {
		return lessID(ordered[i].ID, ordered[j].ID)
	})

	norms := make([]normRef, len(ordered))
	for i := range ordered {
		ref := &ordered[i]
		if err := ref.Validate(); err != nil {
			return nil, Stats{}, fmt.Errorf("invalid reference %s: %w", ref.ID, err)
		}
		if i > 0 && ordered[i-1].ID == ref.ID {
			return nil, Stats{}, fmt.Errorf("duplicate reference ID %s in input", ref.ID)
		}
		norms[i] = normalizeRef(ref)
	}

	uf := newUnionFind(len(norms))
	exactMatched := make([]bool, len(norms))

	// Exact pass: shared DOI always merges, then shared PMID. Union-find
	// gives the transitive closure, so a chain of pairwise key matches
	// collapses into one cluster.
	unionByKey(uf, norms, exactMatched, func(n *normRef) string { return n.doi })
	unionByKey(uf, norms, exactMatched, func(n *normRef) string { return n.pmid })

	pairs, skipped, err := e.fuzzyPairs(ctx, norms, exactMatched)
	if err != nil {
		return nil, Stats{}, err
	}
	// Merges are applied in one sorted order so cluster membership is
	// independent of worker scheduling.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	for _, p := range pairs {
		uf.union(p.a, p.b)
	}

	clusters := e.buildClusters(norms, uf)
	stats := Stats{
		References:        len(refs),
		Clusters:          len(clusters),
		DuplicatesRemoved: len(refs) - len(clusters),
		SkippedBuckets:    skipped,
	}
	return clusters, stats, nil
}

// unionByKey merges all references sharing a non-empty key value.
func unionByKey(uf *unionFind, norms []normRef, exactMatched []bool, key func(*normRef) string) {
	first := make(map[string]int, len(norms))
	for i := range norms {
		k := key(&norms[i])
		if k == "" {
			continue
		}
		if j, seen := first[k]; seen {
			uf.union(j, i)
			exactMatched[i] = true
			exactMatched[j] = true
		} else {
			first[k] = i
		}
	}
}

// pair is a candidate merge between two reference indices, a < b.
type pair struct {
	a, b int
}

// block is a fuzzy-matching bucket: publication year plus first-author
// surname initial.
type block struct {
	year    int
	initial string
}

// fuzzyPairs scores title similarity within blocking buckets and
// returns the candidate merges plus the number of oversized buckets it
// skipped. Buckets are independent, so they are scored concurrently; a
// pair is considered only when at least one side found no exact-key
// match.
func (e *Engine) fuzzyPairs(ctx context.Context, norms []normRef, exactMatched []bool) ([]pair, int, error) {
	blocks := make(map[block][]int)
	noYear := make(map[string][]int)
	for i := range norms {
		initial := surnameInitial(norms[i].surnames)
		b := block{year: norms[i].ref.Year, initial: initial}
		blocks[b] = append(blocks[b], i)
		if b.year == 0 {
			noYear[initial] = append(noYear[initial], i)
		}
	}

	// A reference with no recorded year can match any year, so it joins
	// every bucket sharing its surname initial. Duplicate candidate
	// pairs from overlapping buckets are harmless: union is idempotent.
	for b := range blocks {
		if b.year == 0 {
			continue
		}
		if extra, ok := noYear[b.initial]; ok {
			blocks[b] = append(blocks[b], extra...)
		}
	}

	keys := make([]block, 0, len(blocks))
	for b := range blocks {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].initial < keys[j].initial
	})

	var (
		mu         sync.Mutex
		candidates []pair
		skipped    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.params.Workers)

	for _, k := range keys {
		indices := blocks[k]
		if len(indices) < 2 {
			continue
		}
		if len(indices) > e.params.MaxBlockSize {
			skipped++
			e.logger.Warn("skipping oversized blocking bucket",
				slog.Int("year", k.year),
				slog.String("initial", k.initial),
				slog.Int("size", len(indices)))
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var local []pair
			for x := 0; x < len(indices); x++ {
				for y := x + 1; y < len(indices); y++ {
					i, j := indices[x], indices[y]
					if i == j {
						continue
					}
					if i > j {
						i, j = j, i
					}
					if exactMatched[i] && exactMatched[j] {
						continue
					}
					if e.fuzzyMatch(&norms[i], &norms[j]) {
						local = append(local, pair{a: i, b: j})
					}
				}
			}
			if len(local) > 0 {
				mu.Lock()
				candidates = append(candidates, local...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return candidates, skipped, nil
}

// fuzzyMatch applies the fuzzy duplicate rule: title similarity at or
// above the threshold, compatible years (equal, or at least one side
// unknown), and overlapping author surname sets (or both sides without
// authors).
func (e *Engine) fuzzyMatch(a, b *normRef) bool {
	if a.title == "" || b.title == "" {
		return false
	}
	if a.ref.Year != 0 && b.ref.Year != 0 && a.ref.Year != b.ref.Year {
		return false
	}
	if !surnamesOverlap(a.surnames, b.surnames) {
		return false
	}
	return e.scorer.Score(a.title, b.title) >= e.params.TitleThreshold
}

func surnamesOverlap(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if set[s] {
			return true
		}
	}
	return false
}

// buildClusters materializes the union-find partition, selecting a
// primary per cluster and sorting members and clusters for stable output.
func (e *Engine) buildClusters(norms []normRef, uf *unionFind) []domain.DuplicateCluster {
	groups := make(map[int][]int)
	for i := range norms {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	clusters := make([]domain.DuplicateCluster, 0, len(groups))
	for _, members := range groups {
		primary := members[0]
		ids := make([]uuid.UUID, len(members))
		for i, m := range members {
			ids[i] = norms[m].ref.ID
			if betterPrimary(&norms[m], &norms[primary]) {
				primary = m
			}
		}
		// members are index-ascending and indices are ID-ordered, so
		// ids are already sorted
		clusters = append(clusters, domain.DuplicateCluster{
			PrimaryID:    norms[primary].ref.ID,
			ReferenceIDs: ids,
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		return lessID(clusters[i].PrimaryID, clusters[j].PrimaryID)
	})
	return clusters
}

// betterPrimary reports whether a should be preferred over b as a
// cluster primary: most populated identifying fields, then earliest
// import, then lowest ID. This ordering is total, so primary selection
// is deterministic.
func betterPrimary(a, b *normRef) bool {
	if a.fields != b.fields {
		return a.fields > b.fields
	}
	if !a.ref.ImportedAt.Equal(b.ref.ImportedAt) {
		return a.ref.ImportedAt.Before(b.ref.ImportedAt)
	}
	return lessID(a.ref.ID, b.ref.ID)
}

func normalizeRef(ref *domain.Reference) normRef {
	n := normRef{
		ref:      ref,
		doi:      NormalizeDOI(ref.DOI),
		pmid:     NormalizePMID(ref.PMID),
		title:    NormalizeTitle(ref.Title),
		surnames: normalizeSurnames(ref.Authors),
	}
	if n.doi != "" {
		n.fields++
	}
	if n.pmid != "" {
		n.fields++
	}
	if ref.Year != 0 {
		n.fields++
	}
	if len(ref.Authors) > 0 {
		n.fields++
	}
	return n
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// unionFind is a disjoint-set over reference indices with path
// compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: make([]int, n)}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
