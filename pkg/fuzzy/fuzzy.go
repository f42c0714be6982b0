// Package fuzzy provides typo-tolerant matching for mailbox mirror searches.
package fuzzy

import "strings"

// LevenshteinDistance calculates the edit distance between two strings.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalize(s1)
	s2 = normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// Match reports whether query fuzzy-matches text within the given maximum
// edit distance. Substring and prefix hits always match.
func Match(query, text string, threshold int) bool {
	query = normalize(query)
	text = normalize(text)

	if query == "" {
		return false
	}
	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// MatchMessage reports whether a mirrored message matches the query across
// subject, sender, snippet and body. Only the first 500 bytes of the body
// are considered.
func MatchMessage(query, subject, from, snippet, body string) bool {
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	if Match(query, subject, threshold) {
		return true
	}
	if Match(query, from, threshold) {
		return true
	}
	if Match(query, snippet, threshold) {
		return true
	}

	if len(body) > 500 {
		body = body[:500]
	}
	return Match(query, body, threshold)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
