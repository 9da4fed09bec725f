package internal

import (
	"strings"
	"unicode"
)

// tokenMatcher is a streaming matcher for a single case-folded token.
// It keeps at most len(pattern) state: the number of trailing characters
// that currently form a prefix of the pattern, plus a precomputed failure
// table so a mismatch (or a completed match) falls back to the longest
// proper suffix that is still a pattern prefix. The fallback is what
// makes overlapping matches work: feeding "aaa" to a matcher for "aa"
// reports a match on the second and on the third character.
type tokenMatcher struct {
	pattern []rune
	fail    []int
	matched int
}

// newTokenMatcher folds the search token once up front. Incoming
// characters must be folded by the caller via foldRune.
func newTokenMatcher(search string) *tokenMatcher {
	pattern := []rune(strings.Map(foldRune, search))

	// fail[i] is the length of the longest proper prefix of
	// pattern[:i+1] that is also a suffix of it.
	fail := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		k := fail[i-1]
		for k > 0 && pattern[i] != pattern[k] {
			k = fail[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		fail[i] = k
	}

	return &tokenMatcher{pattern: pattern, fail: fail}
}

// foldRune is the case folding applied to both the token and the stream.
func foldRune(r rune) rune { return unicode.ToLower(r) }

// Reset drops any partial match. Called on line breaks and separators.
func (m *tokenMatcher) Reset() { m.matched = 0 }

// Feed consumes one folded character and reports whether it completed a
// match. After a completed match the state already points at the longest
// reusable suffix, so overlapping occurrences are found without
// rereading input.
func (m *tokenMatcher) Feed(r rune) bool {
	for m.matched > 0 && r != m.pattern[m.matched] {
		m.matched = m.fail[m.matched-1]
	}
	if r == m.pattern[m.matched] {
		m.matched++
	}
	if m.matched == len(m.pattern) {
		m.matched = m.fail[m.matched-1]
		return true
	}
	return false
}
