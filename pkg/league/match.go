package league

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Outcome is the categorical result of a single match
type Outcome string

const (
	OutcomeHomeWin   Outcome = "H"
	OutcomeDraw      Outcome = "D"
	OutcomeAwayWin   Outcome = "A"
	OutcomeNotPlayed Outcome = "N"
)

// MatchRecord represents one fixture from the input data with database
// persistence annotations. Numeric fields default to -1 to distinguish
// "missing" (postponed or unscheduled) from a valid zero.
type MatchRecord struct {
	Round       int    `json:"Round" column:"round" dbtype:"INTEGER DEFAULT -1" index:"true"`
	GameInRound int    `json:"GameInRound" column:"game_in_round" dbtype:"INTEGER DEFAULT -1"`
	Date        string `json:"Date,omitempty" column:"date" dbtype:"TEXT"`
	HomeTeam    string `json:"HomeTeam" column:"home_team" dbtype:"TEXT NOT NULL" index:"true"`
	AwayTeam    string `json:"AwayTeam" column:"away_team" dbtype:"TEXT NOT NULL" index:"true"`
	HomeGoals   int    `json:"HomeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals   int    `json:"AwayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`
	Stadium     string `json:"Stadium,omitempty" column:"stadium" dbtype:"TEXT"`

	// Derived by classification, never read back from input
	HomePoints int     `json:"HomePoints" column:"home_points" dbtype:"INTEGER DEFAULT 0"`
	AwayPoints int     `json:"AwayPoints" column:"away_points" dbtype:"INTEGER DEFAULT 0"`
	Outcome    Outcome `json:"Outcome" column:"outcome" dbtype:"TEXT"`
}

// NewMatchRecord creates a MatchRecord with default values for numeric fields
func NewMatchRecord() *MatchRecord {
	return &MatchRecord{
		Round:       -1,
		GameInRound: -1,
		HomeGoals:   -1,
		AwayGoals:   -1,
		Outcome:     OutcomeNotPlayed,
	}
}

// HasBeenPlayed determines if the match has a final score
func (m *MatchRecord) HasBeenPlayed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// ScoreString renders the final score, or an empty string for unplayed matches
func (m *MatchRecord) ScoreString() string {
	if !m.HasBeenPlayed() {
		return ""
	}
	return fmt.Sprintf("%d - %d", m.HomeGoals, m.AwayGoals)
}

// Classify derives the points awarded to each side and the categorical
// outcome from the goal counts. Pure, no other state is consulted.
// A missing goal count on either side means the match has not been played
// and contributes nothing to the table.
func Classify(homeGoals, awayGoals int) (homePoints, awayPoints int, outcome Outcome) {
	if homeGoals < 0 || awayGoals < 0 {
		return 0, 0, OutcomeNotPlayed
	}
	switch {
	case homeGoals > awayGoals:
		return Config.PointsForWin, 0, OutcomeHomeWin
	case homeGoals < awayGoals:
		return 0, Config.PointsForWin, OutcomeAwayWin
	default:
		return Config.PointsForDraw, Config.PointsForDraw, OutcomeDraw
	}
}

// ClassifyMatches annotates every record with its derived points and outcome
func ClassifyMatches(matches []*MatchRecord) {
	for _, m := range matches {
		m.HomePoints, m.AwayPoints, m.Outcome = Classify(m.HomeGoals, m.AwayGoals)
	}
}

// PlayedMatches returns the records whose outcome is final
func PlayedMatches(matches []*MatchRecord) []*MatchRecord {
	played := make([]*MatchRecord, 0, len(matches))
	for _, m := range matches {
		if m.Outcome != OutcomeNotPlayed {
			played = append(played, m)
		}
	}
	return played
}

// SortForListing orders matches for the per-round listing: by round then
// date, with missing rounds and empty dates pushed to the end. The sort is
// stable so input order breaks any remaining ties.
func SortForListing(matches []*MatchRecord) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Round != b.Round {
			// -1 means unscheduled, keep those last
			if a.Round < 0 {
				return false
			}
			if b.Round < 0 {
				return true
			}
			return a.Round < b.Round
		}
		if a.Date != b.Date {
			if a.Date == "" {
				return false
			}
			if b.Date == "" {
				return true
			}
			return a.Date < b.Date
		}
		return false
	})
}

// GroupMatchesByRound groups matches by their round number.
// Matches with no usable round number are grouped under -1.
func GroupMatchesByRound(matches []*MatchRecord) map[int][]*MatchRecord {
	roundMatches := make(map[int][]*MatchRecord)
	for _, m := range matches {
		round := m.Round
		if round < 0 {
			round = -1
		}
		roundMatches[round] = append(roundMatches[round], m)
	}
	return roundMatches
}

// TeamNames returns the unique team names appearing in the matches,
// home or away, in first-seen order.
func TeamNames(matches []*MatchRecord) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.HomeTeam != "" && !seen[m.HomeTeam] {
			seen[m.HomeTeam] = true
			names = append(names, m.HomeTeam)
		}
		if m.AwayTeam != "" && !seen[m.AwayTeam] {
			seen[m.AwayTeam] = true
			names = append(names, m.AwayTeam)
		}
	}
	return names
}

// ToJSONString serializes the record, mostly useful in diagnostics
func (m *MatchRecord) ToJSONString() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
