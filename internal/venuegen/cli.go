package venuegen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/bardeals/happyhour/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "venuegen_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the venuegen tool.
func ShowHelp() {
	os.Stdout.WriteString(`Happy Hour Catalog Generator
============================

Generates a randomized bar catalog in the JSON shape the service loads at
startup, and optionally smoke-checks a running instance against it.

Usage:
  go run cmd/venuegen/main.go [options]

Options:
  -output string
        Output file for the generated catalog (default: generated_catalog_TIMESTAMP.json)
  -venues int
        Number of venues to generate (default 200)
  -url string
        Base URL of a running service to smoke-check; empty skips the check
  -workers int
        Number of concurrent workers for the smoke check (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: venuegen_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate a 200-venue catalog
  go run cmd/venuegen/main.go -output data/bars.json

  # Generate a large catalog and verify a running service
  go run cmd/venuegen/main.go -venues 1000 -output data/bars.json -url http://localhost:9080
`)
}
