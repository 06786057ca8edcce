// Package selection picks the single most relevant deal for a venue under
// the active time-filter mode and labels its status for display.
//
// Selection is a display policy, deliberately decoupled from the stricter
// ranking predicate: modes that find no ideal match fall back to the first
// today-matching deal so a card always has something to show, even when the
// ranking filter would have excluded the venue.
package selection

import (
	"sort"

	"github.com/bardeals/happyhour/internal/domain/dealtime"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/types"
)

// Status labels.
const (
	labelOpen     = "Open now"
	labelEnded    = "Ended"
	labelNoDeal   = "No deal info"
	labelStartsAt = "Starts at "
	labelTomorrow = "Tomorrow "
)

// Pick returns the venue's best-matching deal for the context's time-filter
// mode, or nil when nothing matches. The returned deal is a copy; callers
// never alias catalog data.
func Pick(v model.Venue, ctx types.Context) *model.Deal {
	if len(v.Deals) == 0 {
		return nil
	}

	if ctx.Filter == types.FilterTomorrow {
		candidates := matchingDay(v.Deals, ctx.TomorrowWeekday())
		if len(candidates) == 0 {
			return nil
		}
		sortByStart(candidates)
		return copyDeal(candidates[0])
	}

	todays := matchingDay(v.Deals, ctx.Weekday)
	if len(todays) == 0 {
		// Nothing today: expose the first deal so displays outside the
		// filter path still have a window to show.
		return copyDeal(v.Deals[0])
	}

	switch ctx.Filter {
	case types.FilterNow:
		for _, d := range todays {
			if dealtime.Evaluate(d, ctx.Weekday, ctx.Minutes) == types.StatusOpen {
				return copyDeal(d)
			}
		}
		return copyDeal(todays[0])
	case types.FilterLater:
		upcoming := make([]model.Deal, 0, len(todays))
		for _, d := range todays {
			if dealtime.Evaluate(d, ctx.Weekday, ctx.Minutes) == types.StatusUpcoming {
				upcoming = append(upcoming, d)
			}
		}
		if len(upcoming) > 0 {
			sortByStart(upcoming)
			return copyDeal(upcoming[0])
		}
		return copyDeal(todays[0])
	default:
		return copyDeal(todays[0])
	}
}

// Describe evaluates the picked deal under the context and returns its
// status plus the display label. A nil deal reads as unknown.
func Describe(d *model.Deal, ctx types.Context) (types.Status, string) {
	if d == nil {
		return types.StatusUnknown, labelNoDeal
	}

	if ctx.Filter == types.FilterTomorrow {
		return types.StatusUpcoming, labelTomorrow + d.From
	}

	switch dealtime.Evaluate(*d, ctx.Weekday, ctx.Minutes) {
	case types.StatusOpen:
		return types.StatusOpen, labelOpen
	case types.StatusUpcoming:
		return types.StatusUpcoming, labelStartsAt + d.From
	default:
		return types.StatusInactive, labelEnded
	}
}

// matchingDay filters deals to those active on the given weekday.
func matchingDay(deals []model.Deal, weekday int) []model.Deal {
	out := make([]model.Deal, 0, len(deals))
	for _, d := range deals {
		if dealtime.MatchesDay(d, weekday) {
			out = append(out, d)
		}
	}
	return out
}

// sortByStart orders deals by ascending start time. Stable so the catalog
// order stays the tie-break for equal starts.
func sortByStart(deals []model.Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		return dealtime.StartMinutes(deals[i]) < dealtime.StartMinutes(deals[j])
	})
}

func copyDeal(d model.Deal) *model.Deal {
	c := d
	c.Days = append([]int(nil), d.Days...)
	return &c
}
