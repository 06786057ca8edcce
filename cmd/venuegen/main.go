package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/bardeals/happyhour/internal/venuegen"
)

// Default configuration constants.
const (
	defaultNumVenues  = 200
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "", "Base URL of a running service to smoke-check (empty skips the check)")
		numVenues  = flag.Int("venues", defaultNumVenues, "Number of venues to generate")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers for the smoke check")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for the generated catalog (default: generated_catalog_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: venuegen_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		venuegen.ShowHelp()
		return
	}

	if err := venuegen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &venuegen.Config{
		BaseURL:    *baseURL,
		NumVenues:  *numVenues,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := venuegen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		return
	}
}
