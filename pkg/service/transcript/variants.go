package transcript

import (
	"strings"
	"unicode/utf8"
)

// minLabelMatchLength guards short speaker labels from accidental
// substring matches against longer variants (e.g. "Al" vs "albert").
const minLabelMatchLength = 3

// Variants derives the comparable lowercase forms of a name: the full
// name, the first token, the last token (for multi-token names), and all
// tokens concatenated without spaces. Blank input yields nothing.
func Variants(name string) []string {
	full := strings.ToLower(strings.TrimSpace(name))
	if full == "" {
		return nil
	}

	tokens := strings.Fields(full)
	seen := map[string]struct{}{}
	var variants []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(full)
	add(tokens[0])
	if len(tokens) > 1 {
		add(tokens[len(tokens)-1])
		add(strings.Join(tokens, ""))
	}

	return variants
}

// NameMatcher decides whether a detected speaker label identifies the
// target person, across the canonical name and its aliases.
type NameMatcher struct {
	variants []string
}

// NewNameMatcher builds a matcher from a canonical name and aliases.
// Blank names and aliases are filtered out.
func NewNameMatcher(name string, aliases []string) *NameMatcher {
	seen := map[string]struct{}{}
	var union []string
	for _, n := range append([]string{name}, aliases...) {
		for _, v := range Variants(n) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			union = append(union, v)
		}
	}
	return &NameMatcher{variants: union}
}

// Matches reports whether the speaker label identifies the target person.
// The rule is intentionally permissive to tolerate nicknames and partial
// names in inconsistent transcripts: an exact variant match, a variant
// contained in the label, or the label contained in a variant when the
// label is at least three characters long.
func (m *NameMatcher) Matches(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}

	for _, v := range m.variants {
		if label == v {
			return true
		}
		if strings.Contains(label, v) {
			return true
		}
		if utf8.RuneCountInString(label) >= minLabelMatchLength && strings.Contains(v, label) {
			return true
		}
	}
	return false
}

// Variants exposes the deduplicated variant set, mostly for logging
func (m *NameMatcher) Variants() []string {
	return m.variants
}
