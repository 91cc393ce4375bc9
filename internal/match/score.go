package match

import (
	"regexp"
	"sort"
	"strings"
)

// ExactScore is returned for an exact string match and short-circuits
// every other signal.
const ExactScore = 1000

// Known abbreviation → full name pairs. Checked in order; first hit wins.
var abbreviations = []struct{ abbr, full string }{
	{"gta", "grand theft auto"},
	{"cod", "call of duty"},
	{"ac", "assassins creed"},
	{"bf", "battlefield"},
	{"csgo", "counter strike global offensive"},
	{"dota", "defense of the ancients"},
	{"lol", "league of legends"},
	{"wow", "world of warcraft"},
}

var reNumbers = regexp.MustCompile(`\d+`)

func extractNumbers(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, n := range reNumbers.FindAllString(s, -1) {
		out[n] = struct{}{}
	}
	return out
}

// missingTextPenalty measures how much of the query is absent from the
// candidate: word-set difference, character-set difference, a capped
// length-excess term, and a flat penalty for a tiny query against a long
// candidate.
func missingTextPenalty(query, candidate string) float64 {
	q := strings.TrimSpace(query)
	c := strings.TrimSpace(candidate)

	qWords := wordSet(q)
	cWords := wordSet(c)

	qChars := charSet(strings.ReplaceAll(q, " ", ""))
	cChars := charSet(strings.ReplaceAll(c, " ", ""))

	penalty := 0.0

	if len(qWords) > 0 {
		missing := 0
		for w := range qWords {
			if _, ok := cWords[w]; !ok {
				missing++
			}
		}
		penalty += float64(missing) / float64(len(qWords)) * 120
	}

	if len(qChars) > 0 {
		missing := 0
		for r := range qChars {
			if _, ok := cChars[r]; !ok {
				missing++
			}
		}
		penalty += float64(missing) / float64(len(qChars)) * 80
	}

	if diff := len(c) - len(q); diff > 0 {
		penalty += min(float64(diff)*2, 60)
	}

	if len(q) <= 3 && len(c) > 10 {
		penalty += 40
	}

	return penalty
}

// Score computes a signed similarity score between a query and a
// candidate title (higher = better). Both inputs are expected
// pre-lowercased. The result may be negative; callers apply thresholds.
func Score(query, candidate string) float64 {
	if query == candidate {
		return ExactScore
	}

	score := 0.0

	// Number agreement: sequels live and die by this.
	qNums := extractNumbers(query)
	cNums := extractNumbers(candidate)
	switch {
	case len(qNums) > 0 && len(cNums) > 0:
		common := 0
		for n := range qNums {
			if _, ok := cNums[n]; ok {
				common++
			}
		}
		score += float64(common) * 150
		mismatched := len(qNums) + len(cNums) - 2*common
		score -= float64(mismatched) * 30
	case len(qNums) > 0:
		score -= float64(len(qNums)) * 80
	case len(cNums) > 0:
		score -= float64(len(cNums)) * 20
	}

	penalty := missingTextPenalty(query, candidate)

	// Abbreviation expansions look like big lexical mismatches, so a hit
	// also shrinks the missing-text penalty.
	for _, a := range abbreviations {
		if strings.HasPrefix(query, a.abbr) && strings.Contains(candidate, a.full) {
			score += 300
			penalty *= 0.3
			break
		}
	}

	score -= penalty

	qWords := wordSet(query)
	cWords := wordSet(candidate)
	for w := range qWords {
		if _, ok := cWords[w]; ok {
			score += 100
		}
	}

	if strings.HasPrefix(candidate, query) {
		score += 80
	}
	for w := range cWords {
		if strings.HasPrefix(w, query) {
			score += 60
			break
		}
	}

	// Short queries prefer short candidates.
	if len(query) <= 5 {
		score += max(0, 50-float64(len(candidate)))
	}

	// Character-set Jaccard.
	qChars := charSet(query)
	cChars := charSet(candidate)
	shared := 0
	for r := range qChars {
		if _, ok := cChars[r]; ok {
			shared++
		}
	}
	union := len(qChars) + len(cChars) - shared
	if union > 0 {
		score += float64(shared) / float64(union) * 30
	}

	// Edit-distance similarity over the full strings.
	maxLen := len(query)
	if len(candidate) > maxLen {
		maxLen = len(candidate)
	}
	if maxLen > 0 {
		d := Levenshtein(query, candidate)
		score += (1 - float64(d)/float64(maxLen)) * 40
	}

	if strings.Contains(candidate, query) {
		score += 50
	}
	if len(candidate) <= len(query) && strings.Contains(query, candidate) {
		score += 30
	}

	return score
}

// Candidate is one library entry offered to the matcher.
type Candidate struct {
	ID   string
	Name string
}

// MatchCandidate is a scored candidate for one query.
type MatchCandidate struct {
	ID    string
	Name  string
	Score float64
}

// FindBestMatches scores the query against every candidate and returns
// those clearing threshold, best first, capped at maxResults.
func FindBestMatches(query string, candidates []Candidate, threshold float64, maxResults int) []MatchCandidate {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []MatchCandidate
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		s := Score(q, strings.ToLower(c.Name))
		if s >= threshold {
			out = append(out, MatchCandidate{ID: c.ID, Name: c.Name, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		out[w] = struct{}{}
	}
	return out
}

func charSet(s string) map[rune]struct{} {
	out := make(map[rune]struct{})
	for _, r := range s {
		out[r] = struct{}{}
	}
	return out
}
