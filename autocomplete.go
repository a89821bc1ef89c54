package console

import (
	"strings"
)

// AutocompleteSource supplies the candidates offered while typing an answer.
// It is either a StaticList or a Resolver.
type AutocompleteSource interface {
	candidates(written string) []string
}

// StaticList is a fixed set of candidates.
type StaticList []string

func (l StaticList) candidates(string) []string { return l }

// Resolver computes the candidates for what has been typed so far.
type Resolver func(written string) []string

func (r Resolver) candidates(written string) []string { return r(written) }

func validAutocompleteSource(src AutocompleteSource) bool {
	switch v := src.(type) {
	case StaticList:
		return true
	case Resolver:
		return v != nil
	default:
		return false
	}
}

// emptyAutocompleteSource reports whether src can never offer anything,
// in which case the answer is typed without completion.
func emptyAutocompleteSource(src AutocompleteSource) bool {
	if src == nil {
		return true
	}
	l, ok := src.(StaticList)
	return ok && len(l) == 0
}

// autocompleteMatches returns the candidates that extend written.
func autocompleteMatches(src AutocompleteSource, written string) []string {
	var matches []string
	for _, c := range src.candidates(written) {
		if c != written && strings.HasPrefix(c, written) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completion returns what match adds to written.
func completion(written, match string) string {
	if len(match) <= len(written) {
		return ""
	}
	return match[len(written):]
}
