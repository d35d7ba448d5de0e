package league

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/richard-senior/standings/internal/logger"
)

// Input formats accepted by the match loader
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatHTML = "html"
)

// Ranking modes understood by the ranker
const (
	// Competition ("1224") ranking: tied records share a rank and the next
	// distinct record takes its 1-based position, leaving gaps
	RankingCompetition = "dense-competition"
	// Rank is simply the 1-based position in the sorted table
	RankingPlainSort = "plain-sort-order"
)

// LeagueConfig contains all configurable parameters for a standings build
// This centralizes the knobs on which the two observed input pipelines disagree
type LeagueConfig struct {
	// Input/output locations
	GamesPath string // path of the match data file (json/csv/html)
	TeamsPath string // path of the roster file, ignored when UseRoster is false
	OutDir    string // output directory, created if absent

	// InputFormat is one of FormatJSON, FormatCSV, FormatHTML.
	// Empty means infer from the games file extension.
	InputFormat string

	// UseRoster seeds the team universe from the roster file so that teams
	// with no played matches still appear with all-zero rows
	UseRoster bool

	// DropUnplayedRows discards rows with missing goals at load time instead
	// of carrying them through as not-yet-played fixtures
	DropUnplayedRows bool

	// RankingMode selects how rank numbers are assigned to the sorted table
	RankingMode string

	// IncludeRankColumn prepends a Rank column to the CSV export
	IncludeRankColumn bool

	// Points awarded per result. Goals are final, no other scheme is modeled.
	PointsForWin  int
	PointsForDraw int

	// Output artifacts
	CSVByteOrderMark bool // prefix standings.csv with a UTF-8 BOM
	MarkdownExport   bool // also write standings.md
	BrotliExport     bool // also write a precompressed index.html.br
	SQLiteExport     bool // also write standings.db

	// SiteTitle is the heading of the generated document
	SiteTitle string
}

// Config is the package level instance used by a build
var Config = DefaultLeagueConfig()

// DefaultLeagueConfig returns the default configuration with all standard values
func DefaultLeagueConfig() *LeagueConfig {
	return &LeagueConfig{
		GamesPath: "games.json",
		TeamsPath: "teams.json",
		OutDir:    "dist",

		InputFormat: "",

		UseRoster:        true,
		DropUnplayedRows: false,
		RankingMode:      RankingCompetition,

		IncludeRankColumn: true,

		PointsForWin:  3,
		PointsForDraw: 1,

		CSVByteOrderMark: true,
		MarkdownExport:   true,
		BrotliExport:     false,
		SQLiteExport:     false,

		SiteTitle: "League Standings",
	}
}

// ApplyEnvironment overlays values from the process environment onto the
// configuration. A .env file in the working directory is honoured when
// present. Flags parsed by the caller take precedence, so this should be
// called before flag values are applied.
func (c *LeagueConfig) ApplyEnvironment() {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment overrides from .env")
	}

	if v := os.Getenv("STANDINGS_GAMES"); v != "" {
		c.GamesPath = v
	}
	if v := os.Getenv("STANDINGS_TEAMS"); v != "" {
		c.TeamsPath = v
	}
	if v := os.Getenv("STANDINGS_OUT"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("STANDINGS_RANKING"); v != "" {
		c.RankingMode = v
	}
	if v := os.Getenv("STANDINGS_TITLE"); v != "" {
		c.SiteTitle = v
	}
}

// FormatFor resolves the input format for a match data file. An explicit
// InputFormat wins, otherwise the file extension decides, defaulting to
// JSON.
func (c *LeagueConfig) FormatFor(path string) string {
	if c.InputFormat != "" {
		return c.InputFormat
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return FormatHTML
	default:
		return FormatJSON
	}
}
