// Package dealtime classifies deal time windows against a reference instant.
//
// All functions are pure: the reference instant arrives as an explicit
// weekday (0-6, Sunday=0) plus minutes-since-midnight (0-1439), never from
// the system clock. Inputs outside those ranges are a caller bug; the
// evaluator does not validate them.
package dealtime

import (
	"strconv"
	"strings"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/types"
)

const minutesPerHour = 60

// ToMinutes converts a "HH:MM" wall-clock string to minutes since midnight.
// The second return is false for anything that does not parse.
func ToMinutes(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*minutesPerHour + mins, true
}

// WithinWindow reports whether nowMin falls inside [fromMin, toMin],
// where fromMin > toMin denotes a window crossing midnight.
func WithinWindow(nowMin, fromMin, toMin int) bool {
	if fromMin <= toMin {
		return nowMin >= fromMin && nowMin <= toMin
	}
	return nowMin >= fromMin || nowMin <= toMin
}

// Evaluate classifies a single deal against the given weekday and time.
// Malformed deals (missing times or day set) and deals whose day set does
// not contain weekday are StatusInactive; nothing ever errors.
func Evaluate(d model.Deal, weekday, nowMin int) types.Status {
	if d.From == "" || d.To == "" || len(d.Days) == 0 {
		return types.StatusInactive
	}
	if !containsDay(d.Days, weekday) {
		return types.StatusInactive
	}

	fromMin, ok := ToMinutes(d.From)
	if !ok {
		return types.StatusInactive
	}
	toMin, ok := ToMinutes(d.To)
	if !ok {
		return types.StatusInactive
	}

	if WithinWindow(nowMin, fromMin, toMin) {
		return types.StatusOpen
	}
	// Not open: "soon" is always relative to the window's start on this
	// weekday, for same-day and midnight-crossing windows alike.
	if nowMin < fromMin {
		return types.StatusUpcoming
	}
	return types.StatusInactive
}

// MatchesDay reports whether the deal is active on the given weekday.
// Deals without a day set match nothing.
func MatchesDay(d model.Deal, weekday int) bool {
	return containsDay(d.Days, weekday)
}

// StartMinutes returns the deal's start time in minutes since midnight,
// or -1 when the start time is missing or malformed. Used for
// earliest-start ordering among candidate deals.
func StartMinutes(d model.Deal) int {
	m, ok := ToMinutes(d.From)
	if !ok {
		return -1
	}
	return m
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayLabel renders a weekday set for display: "Daily" for all seven days,
// "Mon-Fri" for exactly the workweek, otherwise the comma-joined day names.
func DayLabel(days []int) string {
	set := [7]bool{}
	for _, d := range days {
		if d >= 0 && d < 7 {
			set[d] = true
		}
	}

	all := true
	for _, present := range set {
		if !present {
			all = false
			break
		}
	}
	if all {
		return "Daily"
	}

	monFri := !set[0] && !set[6]
	for d := 1; d <= 5 && monFri; d++ {
		monFri = set[d]
	}
	if monFri && len(days) > 0 {
		return "Mon-Fri"
	}

	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < 7 {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

// WindowLabel renders a deal's recurrence for display, e.g.
// "Mon-Fri 17:00-19:00". Deals without times render the day part only.
func WindowLabel(d model.Deal) string {
	days := DayLabel(d.Days)
	if d.From == "" || d.To == "" {
		return days
	}
	if days == "" {
		return d.From + "-" + d.To
	}
	return days + " " + d.From + "-" + d.To
}

func containsDay(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
