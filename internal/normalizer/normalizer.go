package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextNormalizer canonicalizes free-text location strings for comparison.
// It is a total, deterministic, idempotent function: lowercase, diacritics
// folded to ASCII, punctuation stripped, whitespace collapsed.
type TextNormalizer struct {
	reNonWord *regexp.Regexp
	reSpaces  *regexp.Regexp
}

// NewTextNormalizer creates a TextNormalizer with its patterns compiled.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		reNonWord: regexp.MustCompile(`[^\w\s]`),
		reSpaces:  regexp.MustCompile(`\s+`),
	}
}

// Normalize canonicalizes s. Empty input yields empty output.
func (tn *TextNormalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = StripDiacritics(s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = tn.reNonWord.ReplaceAllString(s, "")
	s = tn.reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripDiacritics removes combining marks so Yoruba and Igbo place names
// (e.g. "Ọ̀ṣun") compare stably against their plain-ASCII spellings.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
