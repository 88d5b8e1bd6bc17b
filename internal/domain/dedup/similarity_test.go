package dedup

import "testing"

func TestJaroWinklerScorer(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scorer := NewJaroWinklerScorer()

	if got := scorer.Score("identical title", "identical title"); got != 1 {
		t.Errorf("Expected identical strings to score 1, got %f", got)
	}

	if got := scorer.Score("", "some title"); got != 0 {
		t.Errorf("Expected empty string to score 0, got %f", got)
	}

	near := scorer.Score(
		"mindfulness based stress reduction for chronic pain",
		"mindfulness based stress reduction for chronic pain a trial",
	)
	far := scorer.Score(
		"mindfulness based stress reduction for chronic pain",
		"genomic predictors of antibiotic resistance in e coli",
	)
	if near <= far {
		t.Errorf("Expected near pair (%f) to outscore far pair (%f)", near, far)
	}
	if near < 0 || near > 1 || far < 0 || far > 1 {
		t.Errorf("Expected scores in [0,1], got %f and %f", near, far)
	}
}

func TestTokenJaccardScorer(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scorer := NewTokenJaccardScorer()

	testCases := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "a b c", "a b c", 1},
		{"disjoint", "a b", "c d", 0},
		{"half overlap", "a b c d", "a b e f", 1.0 / 3.0},
		{"both empty", "", "", 1},
		{"one empty", "a b", "", 0},
		{"order insensitive", "c b a", "a b c", 1},
		{"repeated tokens collapse", "a a b", "a b", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scorer.Score(tc.a, tc.b); got != tc.expected {
				t.Errorf("Score(%q, %q) = %f, expected %f", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("Expected default params to validate, got %v", err)
	}

	testCases := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero threshold", func(p *Params) { p.TitleThreshold = 0 }},
		{"threshold above one", func(p *Params) { p.TitleThreshold = 1.01 }},
		{"zero workers", func(p *Params) { p.Workers = 0 }},
		{"too many workers", func(p *Params) { p.Workers = 1000 }},
		{"tiny block size", func(p *Params) { p.MaxBlockSize = 1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.modify(params)
			if err := params.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
