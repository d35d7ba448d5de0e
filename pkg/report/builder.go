package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/richard-senior/standings/internal/logger"
	"github.com/richard-senior/standings/pkg/league"
)

// Output file names inside the output directory
const (
	IndexFile    = "index.html"
	CSVFile      = "standings.csv"
	MarkdownFile = "standings.md"
	BrotliFile   = "index.html.br"
	DatabaseFile = "standings.db"
)

// Build runs the whole pipeline: load, classify, aggregate, rank, render,
// write. Load failures of any kind (missing file, bad schema) degrade to
// the error document so the build always ends with viewable output; only
// failures to write the output itself are returned as errors.
func Build() error {
	cfg := league.Config

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutDir, err)
	}

	matches, err := league.LoadMatches(cfg.GamesPath)
	if err != nil {
		logger.Error("Match data could not be loaded", err)
		return writeErrorSite(cfg.OutDir, err)
	}

	var roster []string
	if cfg.UseRoster {
		roster, err = league.LoadRoster(cfg.TeamsPath)
		if err != nil {
			logger.Error("Roster could not be loaded", err)
			return writeErrorSite(cfg.OutDir, err)
		}
		league.ReconcileRoster(matches, roster)
	}

	rows := league.BuildStandings(matches, roster)
	league.SortForListing(matches)

	html, err := RenderIndex(rows, matches)
	if err != nil {
		return err
	}

	if err := WriteStandingsCSV(filepath.Join(cfg.OutDir, CSVFile), rows); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(cfg.OutDir, IndexFile), []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", IndexFile, err)
	}

	if cfg.MarkdownExport {
		if err := WriteMarkdownSummary(filepath.Join(cfg.OutDir, MarkdownFile), html); err != nil {
			return err
		}
	}
	if cfg.BrotliExport {
		if err := WriteBrotli(filepath.Join(cfg.OutDir, BrotliFile), []byte(html)); err != nil {
			return err
		}
	}
	if cfg.SQLiteExport {
		if err := exportDatabase(filepath.Join(cfg.OutDir, DatabaseFile), rows, matches); err != nil {
			return err
		}
	}

	logger.Info("Site build complete", cfg.OutDir)
	return nil
}

// writeErrorSite renders the fallback error document in place of the
// report. Returns an error only if the document itself cannot be written.
func writeErrorSite(outDir string, reason error) error {
	html, err := RenderErrorPage(reason)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, IndexFile), []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write error document: %w", err)
	}
	logger.Warn("Wrote fallback error document to", outDir)
	return nil
}

// exportDatabase writes the finished tables into a fresh sqlite file
func exportDatabase(path string, rows []*league.StandingsRow, matches []*league.MatchRecord) error {
	store, err := league.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.CreateTables(); err != nil {
		return err
	}
	if err := store.SaveStandings(rows); err != nil {
		return err
	}
	return store.SaveMatches(matches)
}
