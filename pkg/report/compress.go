package report

import (
	"fmt"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/richard-senior/standings/internal/logger"
)

// WriteBrotli writes a brotli-precompressed copy of the given content, for
// static hosts that serve .br assets directly.
func WriteBrotli(path string, content []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := brotli.NewWriterLevel(f, brotli.BestCompression)
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to compress %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish compressing %s: %w", path, err)
	}

	logger.Info("Wrote precompressed document", path)
	return nil
}
