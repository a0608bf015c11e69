package merge

import (
	"strings"

	"sheetMerge/internal/table"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keyNormalizer maps cell values to join keys. A Caser keeps state, so each
// merge owns its normalizer.
type keyNormalizer struct {
	upper cases.Caser
}

func newKeyNormalizer() *keyNormalizer {
	return &keyNormalizer{upper: cases.Upper(language.Und)}
}

// Key returns the trimmed, upper-cased text of v
func (n *keyNormalizer) Key(v table.Value) string {
	return n.upper.String(strings.TrimSpace(v.String()))
}

// NormalizeKey is the join key for a single value: " abc " and "ABC" share one
func NormalizeKey(v table.Value) string {
	return newKeyNormalizer().Key(v)
}
