package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/richard-senior/standings/pkg/league"
)

const pageCSS = `
    :root { --bg:#0b1020; --card:#121933; --muted:#a6b1d5; --text:#ecf1ff; --accent:#6ea2ff; }
    * { box-sizing:border-box; }
    body { margin:0; background:var(--bg); color:var(--text); font-family:ui-sans-serif,system-ui,-apple-system,'Segoe UI',Roboto,Arial,sans-serif; }
    .wrap { max-width:1200px; margin: 32px auto; padding: 0 16px; }
    h1 { font-size: clamp(24px, 3vw, 40px); margin: 0 0 16px; }
    .sub { color: var(--muted); margin-bottom: 24px; }
    .card { background: var(--card); border-radius: 16px; padding: 16px; box-shadow: 0 8px 24px rgba(0,0,0,.25); }
    .table { width:100%; border-collapse: collapse; font-size: 14px; }
    .table thead th { text-align: left; padding: 10px 12px; position: sticky; top:0; background: #0f204a; color: #cfe0ff; }
    .table tbody td { padding: 10px 12px; border-top: 1px solid #26345e; }
    .table tbody tr:hover { background: #18244a; }
    a.dl { text-decoration: none; color: var(--accent); }
    footer { color: var(--muted); margin-top: 18px; font-size: 13px; }
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <div class="wrap">
    <h1>{{.Title}}</h1>
    <div class="sub">Built from the match data and roster files. Generated {{.Generated}}.</div>
    <div class="card" style="margin-bottom:16px">
      <h2 style="margin:0 0 8px">Standings</h2>
      <div style="overflow:auto">
        <table class="table">
          <thead>
            <tr>{{if .IncludeRank}}<th>Rank</th>{{end}}<th>Team</th><th>Played</th><th>Wins</th><th>Draws</th><th>Losses</th><th>GF</th><th>GA</th><th>GD</th><th>Points</th></tr>
          </thead>
          <tbody>
            {{range .Standings}}<tr>{{if $.IncludeRank}}<td>{{.Rank}}</td>{{end}}<td>{{.Team}}</td><td>{{.Played}}</td><td>{{.Wins}}</td><td>{{.Draws}}</td><td>{{.Losses}}</td><td>{{.GoalsFor}}</td><td>{{.GoalsAgainst}}</td><td>{{.GoalDifference}}</td><td>{{.Points}}</td></tr>
            {{end}}
          </tbody>
        </table>
      </div>
      <p style="margin-top:12px"><a class="dl" href="./standings.csv" download>Download standings.csv</a></p>
    </div>
    <div class="card">
      <h2 style="margin:0 0 8px">Matches by Round</h2>
      <div style="overflow:auto">
        <table class="table">
          <thead>
            <tr><th>Round</th><th>Date</th><th>Home</th><th>Away</th><th>HG</th><th>AG</th>{{if .ShowStadium}}<th>Stadium</th>{{end}}</tr>
          </thead>
          <tbody>
            {{range .Rounds}}<tr><td>{{.Round}}</td><td>{{.Date}}</td><td>{{.HomeTeam}}</td><td>{{.AwayTeam}}</td><td>{{.HomeGoals}}</td><td>{{.AwayGoals}}</td>{{if $.ShowStadium}}<td>{{.Stadium}}</td>{{end}}</tr>
            {{end}}
          </tbody>
        </table>
      </div>
    </div>
    <footer>GF = goals for, GA = goals against, GD = goal difference. Tied records share a rank (1, 1, 3...).</footer>
  </div>
</body>
</html>`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} - build failed</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <div class="wrap">
    <h1>Could not build the standings</h1>
    <div class="card">
      <p>{{.Reason}}</p>
      <p>The match data must provide the following columns:</p>
      <ul>
        {{range .Required}}<li><code>{{.}}</code></li>
        {{end}}
      </ul>
    </div>
  </div>
</body>
</html>`

var (
	indexTmpl = template.Must(template.New("index").Parse(indexTemplate))
	errorTmpl = template.Must(template.New("error").Parse(errorTemplate))
)

// ListingRow is one display row of the per-round match listing. All values
// are pre-formatted, missing numbers render as empty cells.
type ListingRow struct {
	Round     string
	Date      string
	HomeTeam  string
	AwayTeam  string
	HomeGoals string
	AwayGoals string
	Stadium   string
}

type indexData struct {
	Title       string
	Generated   string
	CSS         template.CSS
	IncludeRank bool
	ShowStadium bool
	Standings   []*league.StandingsRow
	Rounds      []ListingRow
}

type errorData struct {
	Title    string
	CSS      template.CSS
	Reason   string
	Required []string
}

// RenderIndex produces the self-contained HTML document embedding the
// standings table and the per-round match listing. Matches should already
// be in listing order.
func RenderIndex(rows []*league.StandingsRow, matches []*league.MatchRecord) (string, error) {
	listing := make([]ListingRow, 0, len(matches))
	showStadium := false
	for _, m := range matches {
		if m.Stadium != "" {
			showStadium = true
		}
		listing = append(listing, ListingRow{
			Round:     optionalInt(m.Round),
			Date:      m.Date,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeGoals: optionalInt(m.HomeGoals),
			AwayGoals: optionalInt(m.AwayGoals),
			Stadium:   m.Stadium,
		})
	}

	data := indexData{
		Title:       league.Config.SiteTitle,
		Generated:   time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		CSS:         template.CSS(pageCSS),
		IncludeRank: league.Config.IncludeRankColumn,
		ShowStadium: showStadium,
		Standings:   rows,
		Rounds:      listing,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render index document: %w", err)
	}
	return buf.String(), nil
}

// RenderErrorPage produces the degraded but valid document written when
// the match data cannot be loaded. It names the failure and lists the
// required columns so the build never ends without viewable output.
func RenderErrorPage(reason error) (string, error) {
	msg := "unknown failure"
	if reason != nil {
		msg = reason.Error()
	}
	data := errorData{
		Title:    league.Config.SiteTitle,
		CSS:      template.CSS(pageCSS),
		Reason:   msg,
		Required: league.RequiredColumns,
	}

	var buf bytes.Buffer
	if err := errorTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render error document: %w", err)
	}
	return buf.String(), nil
}

// optionalInt renders -1 (missing) as an empty cell
func optionalInt(v int) string {
	if v < 0 {
		return ""
	}
	return strconv.Itoa(v)
}
