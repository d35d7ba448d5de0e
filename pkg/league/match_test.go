package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		homeGoals  int
		awayGoals  int
		homePoints int
		awayPoints int
		outcome    Outcome
	}{
		{"home win", 2, 1, 3, 0, OutcomeHomeWin},
		{"away win", 0, 3, 0, 3, OutcomeAwayWin},
		{"draw", 1, 1, 1, 1, OutcomeDraw},
		{"goalless draw", 0, 0, 1, 1, OutcomeDraw},
		{"missing home goals", -1, 2, 0, 0, OutcomeNotPlayed},
		{"missing away goals", 2, -1, 0, 0, OutcomeNotPlayed},
		{"both missing", -1, -1, 0, 0, OutcomeNotPlayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hp, ap, outcome := Classify(tt.homeGoals, tt.awayGoals)
			assert.Equal(t, tt.homePoints, hp)
			assert.Equal(t, tt.awayPoints, ap)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestHasBeenPlayed(t *testing.T) {
	m := NewMatchRecord()
	assert.False(t, m.HasBeenPlayed())
	assert.Equal(t, "", m.ScoreString())

	m.HomeGoals = 2
	assert.False(t, m.HasBeenPlayed())

	m.AwayGoals = 0
	assert.True(t, m.HasBeenPlayed())
	assert.Equal(t, "2 - 0", m.ScoreString())
}

func TestClassifyMatchesAnnotates(t *testing.T) {
	matches := []*MatchRecord{
		{HomeTeam: "TeamA", AwayTeam: "TeamB", HomeGoals: 2, AwayGoals: 1},
		{HomeTeam: "TeamB", AwayTeam: "TeamC", HomeGoals: -1, AwayGoals: -1},
	}
	ClassifyMatches(matches)

	assert.Equal(t, OutcomeHomeWin, matches[0].Outcome)
	assert.Equal(t, 3, matches[0].HomePoints)
	assert.Equal(t, OutcomeNotPlayed, matches[1].Outcome)
	assert.Equal(t, 0, matches[1].HomePoints)

	played := PlayedMatches(matches)
	assert.Len(t, played, 1)
	assert.Equal(t, "TeamA", played[0].HomeTeam)
}

func TestSortForListing(t *testing.T) {
	matches := []*MatchRecord{
		{Round: 2, Date: "2025-08-10", HomeTeam: "C", AwayTeam: "D"},
		{Round: -1, Date: "", HomeTeam: "X", AwayTeam: "Y"},
		{Round: 1, Date: "2025-08-03", HomeTeam: "A", AwayTeam: "B"},
		{Round: 1, Date: "2025-08-01", HomeTeam: "E", AwayTeam: "F"},
		{Round: 1, Date: "", HomeTeam: "G", AwayTeam: "H"},
	}
	SortForListing(matches)

	// rounds ascending, dates ascending within a round, missing values last
	assert.Equal(t, "E", matches[0].HomeTeam)
	assert.Equal(t, "A", matches[1].HomeTeam)
	assert.Equal(t, "G", matches[2].HomeTeam)
	assert.Equal(t, "C", matches[3].HomeTeam)
	assert.Equal(t, "X", matches[4].HomeTeam)
}

func TestGroupMatchesByRound(t *testing.T) {
	matches := []*MatchRecord{
		{Round: 1, HomeTeam: "A", AwayTeam: "B"},
		{Round: 1, HomeTeam: "C", AwayTeam: "D"},
		{Round: 2, HomeTeam: "A", AwayTeam: "C"},
		{Round: -1, HomeTeam: "E", AwayTeam: "F"},
	}
	grouped := GroupMatchesByRound(matches)

	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[2], 1)
	assert.Len(t, grouped[-1], 1)
}

func TestTeamNames(t *testing.T) {
	matches := []*MatchRecord{
		{HomeTeam: "A", AwayTeam: "B"},
		{HomeTeam: "B", AwayTeam: "C"},
	}
	assert.Equal(t, []string{"A", "B", "C"}, TeamNames(matches))
}
