package league

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/richard-senior/standings/internal/logger"
	"github.com/richard-senior/standings/pkg/util"
)

// RequiredColumns are the fields the match data must carry. Date and
// Stadium are optional depending on the input variant.
var RequiredColumns = []string{"Round", "GameInRound", "HomeTeam", "AwayTeam", "HomeGoals", "AwayGoals"}

// RosterColumn is the one field the roster file must carry
const RosterColumn = "Team"

// SchemaError reports required columns that are entirely absent from the
// input's column set. It is fatal to the computation but the build still
// produces a user facing error document rather than crashing.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s (required: %s)",
		e.Source, strings.Join(e.Missing, ", "), strings.Join(RequiredColumns, ", "))
}

// LoadMatches reads the configured games file and returns validated match
// records. Rows with an empty team name after trimming are dropped; non
// numeric round or goal values become missing (-1), never an error.
func LoadMatches(path string) ([]*MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match data %s: %w", path, err)
	}

	var rows []map[string]any
	var columns map[string]bool

	switch Config.FormatFor(path) {
	case FormatCSV:
		rows, columns, err = parseCSVRows(string(data))
	case FormatHTML:
		rows, columns, err = parseHTMLRows(string(data))
	default:
		rows, columns, err = parseJSONRows(data)
	}
	if err != nil {
		return nil, err
	}

	// Every required column must exist somewhere in the input's column set
	var missing []string
	for _, col := range RequiredColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: path, Missing: missing}
	}

	matches := make([]*MatchRecord, 0, len(rows))
	for i, row := range rows {
		m := rowToMatch(row)
		if m.HomeTeam == "" || m.AwayTeam == "" {
			logger.Debug("Dropping row with empty team name at index", i)
			continue
		}
		if Config.DropUnplayedRows && !m.HasBeenPlayed() {
			logger.Debug("Dropping unplayed row", m.HomeTeam, "vs", m.AwayTeam)
			continue
		}
		matches = append(matches, m)
	}

	logger.Info("Loaded match records", len(matches), "from", path)
	return matches, nil
}

// rowToMatch trims and coerces one raw row into a fixed-shape record.
// Dynamic column presence (Date/Stadium) resolves here, not downstream.
func rowToMatch(row map[string]any) *MatchRecord {
	m := NewMatchRecord()
	m.Round = intOrMissing(row["Round"])
	m.GameInRound = intOrMissing(row["GameInRound"])
	m.HomeGoals = intOrMissing(row["HomeGoals"])
	m.AwayGoals = intOrMissing(row["AwayGoals"])
	m.HomeTeam = stringField(row["HomeTeam"])
	m.AwayTeam = stringField(row["AwayTeam"])
	m.Date = stringField(row["Date"])
	m.Stadium = stringField(row["Stadium"])
	return m
}

// intOrMissing coerces a raw value to an integer, returning -1 for
// anything that does not parse. This models postponed or unscheduled
// games and is deliberately not an error.
func intOrMissing(v any) int {
	if v == nil {
		return -1
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return -1
	}
	n, err := util.GetAsInteger(v)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func stringField(v any) string {
	if v == nil {
		return ""
	}
	s, err := util.GetAsString(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

/////////////////////////////////////////////////////////////////////////
////// Format specific parsing
/////////////////////////////////////////////////////////////////////////

// parseJSONRows parses a JSON list of objects. The column set is the
// union of keys over all rows, matching how tabular tools see it.
func parseJSONRows(data []byte) ([]map[string]any, map[string]bool, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON match data: %w", err)
	}
	columns := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			columns[k] = true
		}
	}
	return rows, columns, nil
}

// parseCSVRows parses delimited text with a header row
func parseCSVRows(data string) ([]map[string]any, map[string]bool, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, map[string]bool{}, nil
	}

	headers := records[0]
	// Clean up first header if it has a BOM
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	columns := make(map[string]bool)
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
		columns[headers[i]] = true
	}

	var rows []map[string]any
	for i, record := range records[1:] {
		if len(record) < len(headers) {
			logger.Warn("Skipping incomplete record at row", i+2)
			continue
		}
		row := make(map[string]any)
		for j, value := range record {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// parseHTMLRows parses the first table in an HTML document, using the
// header cells as column names. Useful for results pages saved straight
// from a league site.
func parseHTMLRows(data string) ([]map[string]any, map[string]bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML match data: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, fmt.Errorf("no table found in HTML match data")
	}

	var headers []string
	columns := make(map[string]bool)
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		name := strings.TrimSpace(cell.Text())
		headers = append(headers, name)
		columns[name] = true
	})

	var rows []map[string]any
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make(map[string]any)
		cells.Each(func(j int, td *goquery.Selection) {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(td.Text())
			}
		})
		rows = append(rows, row)
	})
	return rows, columns, nil
}

/////////////////////////////////////////////////////////////////////////
////// Roster
/////////////////////////////////////////////////////////////////////////

// LoadRoster reads the authoritative team list. JSON files must be a list
// of objects with a "Team" field, CSV files must carry a Team column.
// Empty names are dropped after trimming.
func LoadRoster(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	var rows []map[string]any
	var columns map[string]bool
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		rows, columns, err = parseCSVRows(string(data))
	} else {
		rows, columns, err = parseJSONRows(data)
	}
	if err != nil {
		return nil, err
	}
	if !columns[RosterColumn] {
		return nil, &SchemaError{Source: path, Missing: []string{RosterColumn}}
	}

	seen := make(map[string]bool)
	teams := make([]string, 0, len(rows))
	for _, row := range rows {
		name := stringField(row[RosterColumn])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		teams = append(teams, name)
	}

	logger.Info("Loaded roster teams", len(teams), "from", path)
	return teams, nil
}

// ReconcileRoster warns about team names that appear in the match data but
// not in the roster and look like near-misses of a roster name. Purely a
// data quality aid, nothing is mutated.
func ReconcileRoster(matches []*MatchRecord, roster []string) {
	if len(roster) == 0 {
		return
	}
	known := make(map[string]bool, len(roster))
	for _, t := range roster {
		known[t] = true
	}

	for _, name := range TeamNames(matches) {
		if known[name] {
			continue
		}
		best, bestRank := "", -1
		for _, t := range roster {
			rank := fuzzy.RankMatchNormalizedFold(name, t)
			if r := fuzzy.RankMatchNormalizedFold(t, name); r >= 0 && (rank < 0 || r < rank) {
				rank = r
			}
			if rank >= 0 && (bestRank < 0 || rank < bestRank) {
				best, bestRank = t, rank
			}
		}
		if bestRank >= 0 && bestRank <= 3 {
			logger.Warn("Team not in roster but close to a roster name,", name, "vs", best)
		} else {
			logger.Debug("Team appears only in match data", name)
		}
	}
}
