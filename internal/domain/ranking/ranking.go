// Package ranking runs the venue filter-and-sort pipeline: area, category
// and time-window predicates first, then distance annotation, then a
// status-priority ordering.
package ranking

import (
	"sort"
	"strings"

	"github.com/bardeals/happyhour/internal/domain/dealtime"
	"github.com/bardeals/happyhour/internal/domain/geo"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/selection"
	"github.com/bardeals/happyhour/internal/domain/types"
)

// Rank filters the venues against the context, annotates each survivor with
// its picked deal, status label and distance, and returns them ordered by
// status priority, then distance, then name. The input slice is not
// modified.
func Rank(venues []model.Venue, ctx types.Context) []types.Result {
	results := make([]types.Result, 0, len(venues))
	for _, v := range venues {
		if !matchesArea(v, ctx) {
			continue
		}
		if !matchesCategory(v, ctx) {
			continue
		}
		if !matchesTimeFilter(v, ctx) {
			continue
		}

		deal := selection.Pick(v, ctx)
		status, label := selection.Describe(deal, ctx)

		r := types.Result{
			Venue:  v,
			Deal:   deal,
			Status: status,
			Label:  label,
		}
		if deal != nil {
			r.Schedule = dealtime.WindowLabel(*deal)
		}
		if ctx.Location != nil {
			km := geo.HaversineKm(ctx.Location.Lat, ctx.Location.Lng, v.Lat, v.Lng)
			r.DistanceKm = &km
			r.Distance = geo.FormatDistance(km)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Status.Priority() != b.Status.Priority() {
			return a.Status.Priority() < b.Status.Priority()
		}
		if a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}
		return strings.Compare(a.Venue.Name, b.Venue.Name) < 0
	})

	return results
}

// matchesArea admits every venue when the area is "all", otherwise requires
// an exact zip match.
func matchesArea(v model.Venue, ctx types.Context) bool {
	return ctx.Area == types.AreaAll || v.Zip == ctx.Area
}

// matchesCategory applies the category filter. The featured pseudo-category
// keeps only featured venues unless the show-all override is active, in
// which case featured and all both pass everything.
func matchesCategory(v model.Venue, ctx types.Context) bool {
	if ctx.ShowAll {
		if ctx.Category == types.CategoryAll || ctx.Category == types.CategoryFeatured {
			return true
		}
		return v.Category == ctx.Category
	}

	switch ctx.Category {
	case types.CategoryFeatured:
		return v.Featured
	case types.CategoryAll:
		return true
	default:
		return v.Category == ctx.Category
	}
}

// matchesTimeFilter is the strict ranking predicate. Venues without deal
// data always pass; listed venues must have a window matching the mode.
// Unlike selection, there is no fallback to an ended deal here.
func matchesTimeFilter(v model.Venue, ctx types.Context) bool {
	if len(v.Deals) == 0 {
		return true
	}

	if ctx.Filter == types.FilterTomorrow {
		tomorrow := ctx.TomorrowWeekday()
		for _, d := range v.Deals {
			if dealtime.MatchesDay(d, tomorrow) {
				return true
			}
		}
		return false
	}

	todays := make([]model.Deal, 0, len(v.Deals))
	for _, d := range v.Deals {
		if dealtime.MatchesDay(d, ctx.Weekday) {
			todays = append(todays, d)
		}
	}
	if len(todays) == 0 {
		return false
	}

	switch ctx.Filter {
	case types.FilterNow:
		return anyWithStatus(todays, ctx, types.StatusOpen)
	case types.FilterLater:
		return anyWithStatus(todays, ctx, types.StatusUpcoming)
	default:
		return true
	}
}

func anyWithStatus(deals []model.Deal, ctx types.Context, want types.Status) bool {
	for _, d := range deals {
		if dealtime.Evaluate(d, ctx.Weekday, ctx.Minutes) == want {
			return true
		}
	}
	return false
}
