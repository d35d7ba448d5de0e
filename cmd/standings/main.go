package main

import (
	"flag"
	"fmt"

	"github.com/richard-senior/standings/internal/logger"
	"github.com/richard-senior/standings/pkg/league"
	"github.com/richard-senior/standings/pkg/report"
)

func main() {
	cfg := league.Config
	cfg.ApplyEnvironment()

	debug := flag.Bool("debug", false, "Enable debug logging")
	format := flag.String("format", "", "Input format: json, csv or html (default: inferred from the games file extension)")
	ranking := flag.String("ranking", cfg.RankingMode, "Ranking mode: dense-competition or plain-sort-order")
	noRoster := flag.Bool("no-roster", false, "Do not read a roster file; the team universe is taken from the match data only")
	dropUnplayed := flag.Bool("drop-unplayed", false, "Drop rows with missing goals at load time instead of listing them as unplayed")
	noRankCol := flag.Bool("no-rank-col", false, "Omit the Rank column from the CSV export")
	sqliteExport := flag.Bool("sqlite", false, "Also export standings.db (sqlite)")
	brotliExport := flag.Bool("brotli", false, "Also write a precompressed index.html.br")
	noMarkdown := flag.Bool("no-markdown", false, "Do not write standings.md")
	flag.Parse()

	logger.SetShowDateTime(true)
	if *debug {
		logger.SetLevel(logger.DEBUG)
		logger.Debug("Debug logging enabled")
	}

	// Positional arguments: games file, output directory, roster file
	args := flag.Args()
	if len(args) > 0 {
		cfg.GamesPath = args[0]
	}
	if len(args) > 1 {
		cfg.OutDir = args[1]
	}
	if len(args) > 2 {
		cfg.TeamsPath = args[2]
	}

	cfg.InputFormat = *format
	cfg.RankingMode = *ranking
	cfg.UseRoster = !*noRoster
	cfg.DropUnplayedRows = *dropUnplayed
	cfg.IncludeRankColumn = !*noRankCol
	cfg.SQLiteExport = *sqliteExport
	cfg.BrotliExport = *brotliExport
	cfg.MarkdownExport = !*noMarkdown

	if err := report.Build(); err != nil {
		logger.Fatal("Build failed", err)
	}

	fmt.Printf("Built site into: %s\n", cfg.OutDir)
}
