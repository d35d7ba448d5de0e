package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/standings/pkg/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	old := league.Config
	league.Config = league.DefaultLeagueConfig()
	t.Cleanup(func() { league.Config = old })
}

func buildFixture(t *testing.T) ([]*league.StandingsRow, []*league.MatchRecord) {
	t.Helper()
	matches := []*league.MatchRecord{
		{Round: 1, GameInRound: 1, Date: "2025-08-01", HomeTeam: "TeamA", AwayTeam: "TeamB", HomeGoals: 2, AwayGoals: 1, Stadium: "North Park"},
		{Round: 2, GameInRound: 1, Date: "2025-08-08", HomeTeam: "TeamB", AwayTeam: "TeamC", HomeGoals: 3, AwayGoals: 3},
		{Round: 3, GameInRound: 1, Date: "", HomeTeam: "TeamC", AwayTeam: "TeamA", HomeGoals: -1, AwayGoals: -1},
	}
	rows := league.BuildStandings(matches, []string{"TeamA", "TeamB", "TeamC"})
	league.SortForListing(matches)
	return rows, matches
}

func TestRenderIndex(t *testing.T) {
	resetConfig(t)
	rows, matches := buildFixture(t)

	html, err := RenderIndex(rows, matches)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	// standings table: ranked order with TeamA first
	tables := doc.Find("table.table")
	require.Equal(t, 2, tables.Length())

	var firstTeams []string
	tables.First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		firstTeams = append(firstTeams, strings.TrimSpace(tr.Find("td").Eq(1).Text()))
	})
	assert.Equal(t, []string{"TeamA", "TeamC", "TeamB"}, firstTeams)

	// the unplayed match still appears in the listing with blank goals
	listing := tables.Eq(1)
	lastRow := listing.Find("tbody tr").Last()
	assert.Equal(t, "TeamC", strings.TrimSpace(lastRow.Find("td").Eq(2).Text()))
	assert.Equal(t, "", strings.TrimSpace(lastRow.Find("td").Eq(4).Text()))

	// stadium column present because one row carries a stadium
	assert.Contains(t, listing.Find("thead").Text(), "Stadium")

	// CSV download link
	link, ok := doc.Find("a.dl").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "./standings.csv", link)
}

func TestRenderIndexWithoutRankColumn(t *testing.T) {
	resetConfig(t)
	league.Config.IncludeRankColumn = false
	rows, matches := buildFixture(t)

	html, err := RenderIndex(rows, matches)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	header := doc.Find("table.table").First().Find("thead").Text()
	assert.NotContains(t, header, "Rank")
	assert.Contains(t, header, "Team")
}

func TestRenderErrorPage(t *testing.T) {
	resetConfig(t)
	html, err := RenderErrorPage(fmt.Errorf("games.json: missing required columns: HomeGoals"))
	require.NoError(t, err)

	assert.Contains(t, html, "missing required columns")
	for _, col := range league.RequiredColumns {
		assert.Contains(t, html, col)
	}
}

func TestWriteStandingsCSV(t *testing.T) {
	resetConfig(t)
	rows, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "standings.csv")

	require.NoError(t, WriteStandingsCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 byte order mark, then the header
	require.True(t, len(data) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	lines := strings.Split(strings.TrimSpace(string(data[3:])), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rank,Team,Played,Wins,Draws,Losses,GF,GA,GD,Points", lines[0])
	assert.Equal(t, "1,TeamA,1,1,0,0,2,1,1,3", lines[1])
}

func TestWriteStandingsCSVPlain(t *testing.T) {
	resetConfig(t)
	league.Config.IncludeRankColumn = false
	league.Config.CSVByteOrderMark = false
	rows, _ := buildFixture(t)
	path := filepath.Join(t.TempDir(), "standings.csv")

	require.NoError(t, WriteStandingsCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Team,Played,"))
}

func TestWriteMarkdownSummary(t *testing.T) {
	resetConfig(t)
	rows, matches := buildFixture(t)
	html, err := RenderIndex(rows, matches)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "standings.md")
	require.NoError(t, WriteMarkdownSummary(path, html))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TeamA")
	assert.Contains(t, string(data), "Standings")
}

func TestBuildEndToEnd(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()

	games := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(games, []byte(`[
		{"Round": 1, "GameInRound": 1, "Date": "2025-08-01", "HomeTeam": "TeamA", "AwayTeam": "TeamB", "HomeGoals": 2, "AwayGoals": 1},
		{"Round": 2, "GameInRound": 1, "Date": "2025-08-08", "HomeTeam": "TeamB", "AwayTeam": "TeamC", "HomeGoals": 3, "AwayGoals": 3}
	]`), 0644))
	teams := filepath.Join(dir, "teams.json")
	require.NoError(t, os.WriteFile(teams, []byte(`[
		{"Team": "TeamA"}, {"Team": "TeamB"}, {"Team": "TeamC"}, {"Team": "Idle FC"}
	]`), 0644))

	out := filepath.Join(dir, "dist")
	league.Config.GamesPath = games
	league.Config.TeamsPath = teams
	league.Config.OutDir = out
	league.Config.SQLiteExport = true
	league.Config.BrotliExport = true

	require.NoError(t, Build())

	for _, name := range []string{IndexFile, CSVFile, MarkdownFile, BrotliFile, DatabaseFile} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	html, err := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Idle FC", "roster-only team appears in the report")
}

func TestBuildSchemaErrorWritesErrorPage(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()

	games := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(games, []byte(`[{"HomeTeam": "TeamA", "AwayTeam": "TeamB"}]`), 0644))

	out := filepath.Join(dir, "dist")
	league.Config.GamesPath = games
	league.Config.OutDir = out
	league.Config.UseRoster = false

	// the build succeeds by writing the degraded document
	require.NoError(t, Build())

	html, err := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, err)
	for _, col := range league.RequiredColumns {
		assert.Contains(t, string(html), col)
	}

	_, err = os.Stat(filepath.Join(out, CSVFile))
	assert.True(t, os.IsNotExist(err), "no CSV is produced for a failed load")
}

func TestBuildMissingInputWritesErrorPage(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()

	out := filepath.Join(dir, "dist")
	league.Config.GamesPath = filepath.Join(dir, "nope.json")
	league.Config.OutDir = out
	league.Config.UseRoster = false

	require.NoError(t, Build())

	html, err := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Could not build the standings")
}
