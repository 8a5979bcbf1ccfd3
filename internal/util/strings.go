package util

import "sort"

// LevenshteinDistance calculates the Levenshtein distance between two strings, counting runes
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Suggestions returns the candidates within maxDistance of target, closest first. Ties keep
// the order of candidates and duplicates are reported once.
func Suggestions(target string, candidates []string, maxDistance int) []string {
	type scored struct {
		value    string
		distance int
	}

	seen := make(map[string]struct{}, len(candidates))
	var found []scored
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if d := LevenshteinDistance(target, c); d <= maxDistance {
			found = append(found, scored{c, d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})

	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.value
	}
	return out
}
