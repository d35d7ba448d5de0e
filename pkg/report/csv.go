package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/richard-senior/standings/internal/logger"
	"github.com/richard-senior/standings/pkg/league"
)

// utf8BOM is written ahead of the CSV so spreadsheet tools detect the
// encoding. Process-wide constant, not state.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteStandingsCSV writes the machine-consumable table, one row per team
// in ranked order. The Rank column is prepended when configured.
func WriteStandingsCSV(path string, rows []*league.StandingsRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if league.Config.CSVByteOrderMark {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM to %s: %w", path, err)
		}
	}

	w := csv.NewWriter(f)

	header := []string{"Team", "Played", "Wins", "Draws", "Losses", "GF", "GA", "GD", "Points"}
	if league.Config.IncludeRankColumn {
		header = append([]string{"Rank"}, header...)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Team,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			strconv.Itoa(row.GoalDifference()),
			strconv.Itoa(row.Points),
		}
		if league.Config.IncludeRankColumn {
			record = append([]string{strconv.Itoa(row.Rank)}, record...)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	logger.Info("Wrote standings CSV", path, "rows", len(rows))
	return nil
}
