package league

import (
	"sort"

	"github.com/richard-senior/standings/internal/logger"
)

// TeamRecord is the running aggregate for one team. Counters only ever
// increase while folding; Played = Wins + Draws + Losses holds throughout.
type TeamRecord struct {
	Team         string `json:"team" column:"team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Played       int    `json:"played" column:"played" dbtype:"INTEGER DEFAULT 0"`
	Wins         int    `json:"wins" column:"wins" dbtype:"INTEGER DEFAULT 0"`
	Draws        int    `json:"draws" column:"draws" dbtype:"INTEGER DEFAULT 0"`
	Losses       int    `json:"losses" column:"losses" dbtype:"INTEGER DEFAULT 0"`
	GoalsFor     int    `json:"goalsFor" column:"goals_for" dbtype:"INTEGER DEFAULT 0"`
	GoalsAgainst int    `json:"goalsAgainst" column:"goals_against" dbtype:"INTEGER DEFAULT 0"`
	Points       int    `json:"points" column:"points" dbtype:"INTEGER DEFAULT 0"`
}

// GoalDifference is always derived, never stored independently
func (r *TeamRecord) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// StandingsRow is a TeamRecord with its computed rank
type StandingsRow struct {
	Rank int `json:"rank" column:"rank" dbtype:"INTEGER DEFAULT 0"`
	TeamRecord
}

// sortKey is the triple that decides both ordering and rank sharing
func (r *TeamRecord) sortKey() [3]int {
	return [3]int{r.Points, r.GoalDifference(), r.GoalsFor}
}

// Aggregate folds classified matches into one record per team. Unplayed
// matches contribute nothing. Records are zero-initialized for every
// roster team first, so the final key set is roster union teams seen in
// the match data.
func Aggregate(matches []*MatchRecord, roster []string) map[string]*TeamRecord {
	records := make(map[string]*TeamRecord)

	ensure := func(team string) *TeamRecord {
		r, ok := records[team]
		if !ok {
			r = &TeamRecord{Team: team}
			records[team] = r
		}
		return r
	}

	for _, team := range roster {
		ensure(team)
	}

	played := PlayedMatches(matches)

	// Two symmetric passes over one shared map, home side then away side
	for _, m := range played {
		r := ensure(m.HomeTeam)
		r.Played++
		r.GoalsFor += m.HomeGoals
		r.GoalsAgainst += m.AwayGoals
		r.Points += m.HomePoints
		switch m.Outcome {
		case OutcomeHomeWin:
			r.Wins++
		case OutcomeDraw:
			r.Draws++
		case OutcomeAwayWin:
			r.Losses++
		}
	}
	for _, m := range played {
		r := ensure(m.AwayTeam)
		r.Played++
		r.GoalsFor += m.AwayGoals
		r.GoalsAgainst += m.HomeGoals
		r.Points += m.AwayPoints
		switch m.Outcome {
		case OutcomeAwayWin:
			r.Wins++
		case OutcomeDraw:
			r.Draws++
		case OutcomeHomeWin:
			r.Losses++
		}
	}

	logger.Debug("Aggregated team records", len(records), "from played matches", len(played))
	return records
}

// Rank sorts the aggregated records and assigns rank numbers. Sort key in
// descending priority: Points, goal difference, goals for, then team name
// ascending as a display tie-break that never affects the rank value.
func Rank(records map[string]*TeamRecord) []*StandingsRow {
	rows := make([]*StandingsRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &StandingsRow{TeamRecord: *r})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})

	switch Config.RankingMode {
	case RankingPlainSort:
		for i := range rows {
			rows[i].Rank = i + 1
		}
	default:
		// Competition ("1224") ranking: a row starts a new rank at its
		// 1-based position only when its key differs from the row above
		var lastKey [3]int
		lastRank := 0
		for i, row := range rows {
			key := row.sortKey()
			if i == 0 || key != lastKey {
				lastRank = i + 1
				lastKey = key
			}
			row.Rank = lastRank
		}
	}

	return rows
}

// BuildStandings runs classification, aggregation and ranking in one pass
func BuildStandings(matches []*MatchRecord, roster []string) []*StandingsRow {
	ClassifyMatches(matches)
	return Rank(Aggregate(matches, roster))
}
