package venuegen

import (
	"context"
	"fmt"
	"time"

	"github.com/bardeals/happyhour/pkg/logger"
)

// Run generates a venue catalog, writes it to disk and, when a base URL is
// configured, smoke-checks a running service against it.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting catalog generation",
		logger.String("output", config.OutputFile),
		logger.Int("venues", config.NumVenues),
		logger.Int("workers", config.Workers),
		logger.String("baseURL", config.BaseURL),
		logger.Bool("verbose", config.Verbose))

	venues, err := generateVenues(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("venue generation failed: %w", err)
	}

	filename, err := writeCatalog(ctx, config, venues)
	if err != nil {
		return fmt.Errorf("catalog write failed: %w", err)
	}

	if config.BaseURL != "" {
		if err := smokeCheck(ctx, config, venues, stats); err != nil {
			return fmt.Errorf("smoke check failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats, filename)

	logger.Get().Info(ctx, "catalog generation completed successfully")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats, filename string) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.String("catalog", filename),
		logger.Int("venuesGenerated", stats.VenuesGenerated),
		logger.Int("dealsGenerated", stats.DealsGenerated),
		logger.Int("midnightCrossers", stats.MidnightCrossers),
		logger.Int("featuredVenues", stats.FeaturedVenues),
		logger.Int("venuesChecked", stats.VenuesChecked),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()))
}
