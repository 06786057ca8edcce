// Package types contains common types used across the application.
package types

import (
	"encoding/json"

	"github.com/bardeals/happyhour/internal/domain/model"
)

// Status is the evaluated temporal state of a deal relative to a reference
// instant. It is a closed enumeration so the sort comparator and label
// mapping stay exhaustive.
type Status int

const (
	// StatusOpen means the reference instant falls inside the deal window.
	StatusOpen Status = iota
	// StatusUpcoming means the window starts later on the evaluated weekday.
	StatusUpcoming
	// StatusInactive means the window already ended, the weekday does not
	// match, or the deal is malformed.
	StatusInactive
	// StatusUnknown marks venues without any deal information.
	StatusUnknown
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusUpcoming:
		return "upcoming"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Priority returns the sort rank of the status: open venues first, upcoming
// second, everything else last. Unknown shares the lowest band with inactive.
func (s Status) Priority() int {
	switch s {
	case StatusOpen:
		return 0
	case StatusUpcoming:
		return 1
	default:
		return 2
	}
}

// MarshalJSON encodes the status by its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire name back into the enum. Unrecognized names
// decode as StatusUnknown.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "open":
		*s = StatusOpen
	case "upcoming":
		*s = StatusUpcoming
	case "inactive":
		*s = StatusInactive
	default:
		*s = StatusUnknown
	}
	return nil
}

// TimeFilter is the user-selected lens determining which deals are relevant.
type TimeFilter string

// Supported time-filter modes. Any other value passes venues through
// unfiltered.
const (
	FilterNow      TimeFilter = "now"
	FilterLater    TimeFilter = "later"
	FilterTomorrow TimeFilter = "tomorrow"
)

// Sentinel filter values for category and area selections.
const (
	CategoryFeatured = "featured"
	CategoryAll      = "all"
	AreaAll          = "all"
)

// Context carries everything one ranking pass needs: the reference instant
// broken into weekday and minutes-since-midnight, the active filters, and
// the optional user location. It is an immutable value constructed per
// evaluation; nothing in the engine reads the clock or global state.
//
// Weekday must be 0-6 (Sunday=0) and Minutes 0-1439. Callers are expected to
// derive both from a real clock; the engine does not validate ranges.
type Context struct {
	Weekday  int
	Minutes  int
	Filter   TimeFilter
	Category string
	Area     string
	// ShowAll bypasses the featured-only default without losing category
	// scoping. Entered only via an explicit "see all" action.
	ShowAll  bool
	Location *model.Location
}

// TomorrowWeekday returns the weekday following the context's reference day.
func (c Context) TomorrowWeekday() int {
	return (c.Weekday + 1) % 7
}

// Query carries the caller's ranking parameters as they arrive from the
// outside. Empty fields fall back to configured defaults before a Context
// is built from them.
type Query struct {
	Category string
	Area     string
	Time     string
	Location *model.Location
	ShowAll  bool
	Limit    int
}

// Result pairs a venue with its chosen deal, evaluated status, display label
// and optional distance from the user. Results are derived fresh on every
// ranking pass and never written back onto venues.
type Result struct {
	Venue      model.Venue `json:"venue"`
	Deal       *model.Deal `json:"deal,omitempty"`
	Status     Status      `json:"status"`
	Label      string      `json:"label"`
	DistanceKm *float64    `json:"distance_km,omitempty"`
	// Distance is DistanceKm rendered for display ("450m", "1.2km").
	Distance string `json:"distance,omitempty"`
	// Schedule is the chosen deal's recurrence rendered for display
	// ("Mon-Fri 17:00-19:00"). Empty when no deal was chosen.
	Schedule string `json:"schedule,omitempty"`
}
