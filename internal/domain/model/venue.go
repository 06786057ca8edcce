// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"time"
)

// Location is a WGS84 coordinate pair in floating point degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Deal is a recurring time-boxed offer tied to specific weekdays and a
// start/end wall-clock window. Days use 0-6 with Sunday=0. From and To are
// "HH:MM" wall-clock strings at minute resolution; a deal missing either is
// inert and never evaluates open or upcoming.
type Deal struct {
	Days []int  `json:"days"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Venue is a bar that owns zero or more deals. Venues are immutable once
// loaded; derived per-render state lives on ranking results, never here.
type Venue struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category,omitempty"`
	Zip      string  `json:"zip,omitempty"`
	Featured bool    `json:"featured,omitempty"`
	Image    string  `json:"image,omitempty"`
	Deals    []Deal  `json:"deals,omitempty"`
}

// UnmarshalJSON normalizes the two catalog shapes into one: newer records
// carry a "deals" array, legacy records a single "deal" object. After
// decoding, Deals is always the canonical list (possibly empty).
func (v *Venue) UnmarshalJSON(data []byte) error {
	type Alias Venue
	aux := &struct {
		LegacyDeal *Deal `json:"deal"`
		*Alias
	}{
		Alias: (*Alias)(v),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(v.Deals) == 0 && aux.LegacyDeal != nil {
		v.Deals = []Deal{*aux.LegacyDeal}
	}
	return nil
}

// Submission is a user-filed form payload: a new bar, a correction to an
// existing listing, or an outdated-deal report. IDs are assigned at intake
// for idempotency.
type Submission struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "new_bar" | "correction" | "report"
	BarName   string    `json:"bar_name"`
	Address   string    `json:"address"`
	Details   string    `json:"details"`
	Note      string    `json:"note,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
