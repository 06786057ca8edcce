package venuegen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	catalogPermission   = 0600
)

// writeCatalog writes the generated venues as an indented JSON array, the
// shape the file store loads at startup.
func writeCatalog(ctx context.Context, config *Config, venues []model.Venue) (string, error) {
	if len(venues) == 0 {
		return "", fmt.Errorf("no venues to write")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_catalog_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(venues, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filename, data, catalogPermission); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}

	logger.Get().Info(ctx, "catalog written",
		logger.String("filename", filename),
		logger.Int("venues", len(venues)))
	return filename, nil
}
