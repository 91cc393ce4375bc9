package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreExact(t *testing.T) {
	assert.EqualValues(t, ExactScore, Score("portal 2", "portal 2"))
	assert.Less(t, Score("portal 2", "portal"), float64(ExactScore))
}

func TestScoreNumberAgreement(t *testing.T) {
	// Matching sequel numbers must beat mismatched ones.
	same := Score("call of duty 2", "call of duty 2 demo")
	other := Score("call of duty 2", "call of duty 3")
	assert.Greater(t, same, other)

	// A query number with no counterpart in the candidate is penalized
	// harder than the reverse.
	q := Score("half life 2", "half life")
	c := Score("half life", "half life 2")
	assert.Less(t, q, c)
}

func TestScoreAbbreviation(t *testing.T) {
	withFull := Score("gta 5", "grand theft auto v")
	without := Score("gta 5", "gotham city impostors")
	assert.Greater(t, withFull, without)
}

func TestScorePrefersCloserCandidate(t *testing.T) {
	closer := Score("the witcher 3", "the witcher 3 wild hunt")
	farther := Score("the witcher 3", "the elder scrolls online")
	assert.Greater(t, closer, farther)
}

func TestFindBestMatches(t *testing.T) {
	candidates := []Candidate{
		{ID: "2620", Name: "Call of Duty 2"},
		{ID: "7940", Name: "Call of Duty 4: Modern Warfare"},
		{ID: "620", Name: "Portal 2"},
		{ID: "0", Name: ""},
	}

	got := FindBestMatches("Call of Duty 2", candidates, 50, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "2620", got[0].ID)
	assert.EqualValues(t, ExactScore, got[0].Score)

	// maxResults caps the shortlist.
	capped := FindBestMatches("call of duty", candidates, -1000, 1)
	require.Len(t, capped, 1)
	assert.Equal(t, "2620", capped[0].ID)
}

func TestFindBestMatchesThreshold(t *testing.T) {
	candidates := []Candidate{{ID: "620", Name: "Portal 2"}}
	assert.Empty(t, FindBestMatches("completely unrelated name", candidates, 500, 5))
}
