package domain

import "strings"

// NormalizeName trims surrounding whitespace and lowercases an ingredient or
// recipe name. It is the sole key used to match contributions.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeUnits applies the same folding to a unit label. An absent unit is
// represented by the empty string and stays empty.
func NormalizeUnits(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
