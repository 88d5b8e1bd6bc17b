package dedup

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Scorer computes a similarity score in [0,1] between two normalized
// strings. Implementations must be stateless or otherwise safe for
// concurrent use; the engine scores blocking buckets in parallel.
type Scorer interface {
	Score(a, b string) float64
}

// JaroWinklerScorer scores strings with the Jaro-Winkler metric, which
// rewards shared prefixes. Titles that differ only in a trailing
// subtitle or punctuation variant score high.
type JaroWinklerScorer struct{}

// NewJaroWinklerScorer returns the default title scorer.
func NewJaroWinklerScorer() *JaroWinklerScorer {
	return &JaroWinklerScorer{}
}

// Score implements the Scorer interface.
func (s *JaroWinklerScorer) Score(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, metrics.NewJaroWinkler())
}

// TokenJaccardScorer scores by token-set overlap. It is insensitive to
// word order but penalizes short titles heavily; kept as an alternative
// for threshold calibration against real review corpora.
type TokenJaccardScorer struct{}

// NewTokenJaccardScorer returns a token-overlap scorer.
func NewTokenJaccardScorer() *TokenJaccardScorer {
	return &TokenJaccardScorer{}
}

// Score implements the Scorer interface.
func (s *TokenJaccardScorer) Score(a, b string) float64 {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1
	}

	setA := make(map[string]bool, len(tokensA))
	for _, tok := range tokensA {
		setA[tok] = true
	}

	intersection := 0
	union := len(setA)
	seenB := make(map[string]bool, len(tokensB))
	for _, tok := range tokensB {
		if seenB[tok] {
			continue
		}
		seenB[tok] = true
		if setA[tok] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}
