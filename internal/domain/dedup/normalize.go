package dedup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// doiPrefixes are stripped from the front of a DOI before comparison.
// Imported records carry DOIs in every shape from bare "10.1/x" to full
// resolver URLs.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"dx.doi.org/",
	"doi:",
}

// NormalizeDOI canonicalizes a DOI for exact-key matching: trimmed,
// lowercased, with resolver URL and scheme prefixes removed. Returns ""
// when no DOI remains.
func NormalizeDOI(doi string) string {
	s := strings.ToLower(strings.TrimSpace(doi))
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range doiPrefixes {
			if strings.HasPrefix(s, prefix) {
				s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
				stripped = true
			}
		}
	}
	return s
}

// NormalizePMID reduces a PMID to its digits. Returns "" when the input
// carries no digits.
func NormalizePMID(pmid string) string {
	var b strings.Builder
	b.Grow(len(pmid))
	for _, r := range pmid {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ligatures replaces typographic ligatures that survive citation export.
var ligatures = strings.NewReplacer(
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬀ", "ff",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬆ", "st",
	"œ", "oe",
	"æ", "ae",
)

// fold lowercases a string and strips diacritics so that "Müller" and
// "Muller" compare equal.
func fold(s string) string {
	s = ligatures.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// NormalizeTitle canonicalizes a title for similarity comparison:
// ligature and diacritic folding, lowercasing, punctuation replaced by
// spaces, whitespace collapsed.
func NormalizeTitle(title string) string {
	s := fold(title)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeSurname extracts the folded surname from an author name.
// Both "Lastname, First" and "First M. Lastname" orderings are handled.
func NormalizeSurname(author string) string {
	s := strings.TrimSpace(author)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	} else {
		fields := strings.Fields(s)
		s = fields[len(fields)-1]
	}
	return NormalizeTitle(s)
}

// normalizeSurnames maps an ordered author list to its folded surname
// set, dropping entries that normalize to nothing.
func normalizeSurnames(authors []string) []string {
	surnames := make([]string, 0, len(authors))
	for _, author := range authors {
		if s := NormalizeSurname(author); s != "" {
			surnames = append(surnames, s)
		}
	}
	return surnames
}

// surnameInitial returns the first author's folded surname initial, or
// "" when the reference has no usable author names. Together with the
// publication year it forms the blocking key for fuzzy matching.
func surnameInitial(surnames []string) string {
	if len(surnames) == 0 || surnames[0] == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(surnames[0])
	return string(r)
}
