package venuegen

import "time"

// Config holds configuration for a catalog generation run.
type Config struct {
	BaseURL    string        // Base URL of a running service to smoke-check ("" skips the check)
	NumVenues  int           // Number of venues to generate
	Workers    int           // Number of concurrent workers for the smoke check
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for the generated catalog
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Stats holds generation and smoke-check statistics.
type Stats struct {
	VenuesGenerated  int
	DealsGenerated   int
	MidnightCrossers int
	FeaturedVenues   int
	VenuesChecked    int
	ChecksFailed     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
