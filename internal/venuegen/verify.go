package venuegen

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
)

// statusBand maps a wire status to its expected sort band.
var statusBand = map[string]int{
	"open":     0,
	"upcoming": 1,
	"inactive": 2,
	"unknown":  2,
}

// smokeCheck exercises the read endpoints of a running service against the
// catalog that was just generated. It assumes the service was started with
// the generated file as its data file.
func smokeCheck(ctx context.Context, config *Config, venues []model.Venue, stats *Stats) error {
	logger.Get().Info(ctx, "smoke-checking service", logger.String("baseURL", config.BaseURL))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := checkListingOrder(ctx, client, config.BaseURL); err != nil {
		return fmt.Errorf("listing check failed: %w", err)
	}

	if err := checkCategories(ctx, client, config.BaseURL, venues); err != nil {
		return fmt.Errorf("category check failed: %w", err)
	}

	if err := checkVenueDetails(ctx, client, config, venues, stats); err != nil {
		return fmt.Errorf("venue detail check failed: %w", err)
	}

	logger.Get().Info(ctx, "smoke check passed",
		logger.Int("venuesChecked", stats.VenuesChecked),
		logger.Int("checksFailed", stats.ChecksFailed))
	return nil
}

// checkServiceHealth verifies the service is up. Any 200 counts as healthy;
// the endpoint serves Prometheus metrics.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	if _, err := client.getBody(ctx, baseURL+"/healthz"); err != nil {
		return fmt.Errorf("failed to reach service: %w", err)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// checkListingOrder fetches the full listing and verifies results come back
// grouped by status: open first, then upcoming, then the rest.
func checkListingOrder(ctx context.Context, client *HTTPClient, baseURL string) error {
	body, err := client.getBody(ctx, baseURL+"/venues?category=all&show_all=true")
	if err != nil {
		return err
	}

	results := gjson.ParseBytes(body)
	if !results.IsArray() {
		return fmt.Errorf("expected a JSON array, got: %s", results.Type)
	}

	prevBand := -1
	var orderErr error
	results.ForEach(func(_, r gjson.Result) bool {
		band, ok := statusBand[r.Get("status").String()]
		if !ok {
			orderErr = fmt.Errorf("unknown status %q for venue %s", r.Get("status").String(), r.Get("venue.id").String())
			return false
		}
		if band < prevBand {
			orderErr = fmt.Errorf("venue %s with status %q sorted after a lower-priority result",
				r.Get("venue.id").String(), r.Get("status").String())
			return false
		}
		prevBand = band
		return true
	})
	if orderErr != nil {
		return orderErr
	}

	logger.Get().Info(ctx, "listing order verified", logger.Int("results", int(results.Get("#").Int())))
	return nil
}

// checkCategories verifies every generated category appears in /meta/categories.
func checkCategories(ctx context.Context, client *HTTPClient, baseURL string, venues []model.Venue) error {
	body, err := client.getBody(ctx, baseURL+"/meta/categories")
	if err != nil {
		return err
	}

	listed := make(map[string]bool)
	gjson.ParseBytes(body).ForEach(func(_, c gjson.Result) bool {
		listed[c.String()] = true
		return true
	})

	for _, v := range venues {
		if v.Category != "" && !listed[v.Category] {
			return fmt.Errorf("category %q missing from /meta/categories", v.Category)
		}
	}
	return nil
}

// checkVenueDetails fetches every generated venue by ID concurrently and
// verifies the detail response echoes the right venue.
func checkVenueDetails(ctx context.Context, client *HTTPClient, config *Config, venues []model.Venue, stats *Stats) error {
	var (
		checked int64
		failed  int64
	)

	indexChan := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				v := venues[index]
				body, err := client.getBody(ctx, config.BaseURL+"/venue/"+url.PathEscape(v.ID))
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "venue detail fetch failed",
							logger.String("id", v.ID), logger.Error(err))
					}
					continue
				}

				detail := gjson.ParseBytes(body)
				if detail.Get("venue.id").String() != v.ID {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&checked, 1)
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range venues {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.VenuesChecked = int(atomic.LoadInt64(&checked))
	stats.ChecksFailed = int(atomic.LoadInt64(&failed))

	if stats.ChecksFailed > 0 {
		return fmt.Errorf("%d of %d venue detail checks failed", stats.ChecksFailed, len(venues))
	}
	return nil
}
