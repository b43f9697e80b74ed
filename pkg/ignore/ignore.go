// Package ignore filters enumerated paths against literal ignore patterns.
//
// A pattern is a plain string, not regular-expression or shell syntax:
//
//	node_modules   excludes every path containing "node_modules"
//	.DS_Store      excludes every path containing ".DS_Store" (the dot is literal)
//	a+b            excludes every path containing "a+b"
//
// Each pattern is escaped and compiled into an unanchored regular
// expression, so it matches anywhere in the full path.
package ignore

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrEmptyPattern is returned for an empty pattern, which would match
// every path.
var ErrEmptyPattern = errors.New("ignore pattern must not be empty")

// patternCache caches compiled regular expressions for performance
var patternCache = sync.Map{}

// Matcher excludes paths matching any of its patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// New compiles patterns into a Matcher. A nil or empty pattern list
// yields a Matcher that excludes nothing.
func New(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match reports whether any pattern occurs in path.
func (m *Matcher) Match(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Filter returns the paths that match none of the patterns, in input order.
func (m *Matcher) Filter(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !m.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

// compile escapes pattern and compiles it, using a cache.
func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(Translate(pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}

	patternCache.Store(pattern, re)
	return re, nil
}

// Translate converts a literal pattern to the regular expression used to
// match it.
func Translate(pattern string) string {
	return regexp.QuoteMeta(pattern)
}
