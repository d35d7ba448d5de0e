package report

import (
	"fmt"
	"os"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/richard-senior/standings/internal/logger"
)

// WriteMarkdownSummary converts the rendered report to markdown and writes
// it next to the HTML. This allows the standings to be more easily
// consumed by chat surfaces and LLM clients.
func WriteMarkdownSummary(path string, html string) error {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return fmt.Errorf("failed to convert report to markdown: %w", err)
	}

	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("Wrote markdown summary", path)
	return nil
}
