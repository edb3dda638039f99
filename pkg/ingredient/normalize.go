// Package ingredient holds the string-level rules for ingredient tokens:
// canonical comparison form, display cleanup, and the query builder that
// collects what a user has on hand.
package ingredient

import (
	"sort"
	"strings"
)

// Normalize lowercases and trims a raw ingredient token. No stemming or
// plural handling is done; two tokens match only if their normalized forms
// are identical.
func Normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Set is a set of normalized ingredient tokens
type Set map[string]struct{}

// NewSet normalizes the given tokens into a set. Empty tokens are dropped.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add normalizes and inserts a token
func (s Set) Add(token string) {
	if n := Normalize(token); n != "" {
		s[n] = struct{}{}
	}
}

// Has reports whether the normalized token is present
func (s Set) Has(token string) bool {
	_, ok := s[Normalize(token)]
	return ok
}

// Len returns the number of distinct tokens
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the tokens in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Key returns a stable string form of the set, usable as a cache key
func (s Set) Key() string {
	return strings.Join(s.Sorted(), "|")
}
