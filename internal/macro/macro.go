// Package macro tracks the recurring intraday algorithmic time windows
// and computes countdowns to the next ones. All wall-clock times are
// New York local unless the caller supplies another location.
package macro

import (
	"fmt"
	"sort"
	"time"
)

// Event kinds.
const (
	KindHourly   = "hourly"
	KindKillzone = "killzone"
	KindSpecific = "specific"
	KindNews     = "news"
	KindOpen     = "open"
	KindSetup    = "setup"
	KindClose    = "close"
)

// Event is a recurring daily time window anchor.
type Event struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

// Occurrence is an Event resolved to a concrete future instant.
type Occurrence struct {
	Event
	At time.Time `json:"at"`
}

// Until returns the time remaining from now to the occurrence.
func (o Occurrence) Until(now time.Time) time.Duration {
	return o.At.Sub(now)
}

// Catalog returns every recurring macro anchor: the :50 window of each
// hour plus the named session events. Order matters for tie-breaking;
// the hourly anchor sorts ahead of a named event at the same minute.
func Catalog() []Event {
	events := make([]Event, 0, 33)
	for hour := 0; hour < 24; hour++ {
		events = append(events, Event{
			Hour:   hour,
			Minute: 50,
			Name:   fmt.Sprintf("%02d:50 Macro", hour),
			Kind:   KindHourly,
		})
	}

	events = append(events,
		Event{2, 0, "London Open", KindKillzone},
		Event{2, 33, "London 2:33", KindSpecific},
		Event{3, 0, "London Hour 2", KindKillzone},
		Event{8, 30, "NY Data", KindNews},
		Event{8, 50, "NY Open Macro", KindKillzone},
		Event{9, 30, "NYSE Open", KindOpen},
		Event{10, 0, "Silver Bullet Start", KindSetup},
		Event{14, 0, "PM Power Hour", KindKillzone},
		Event{16, 0, "4H Close", KindClose},
	)
	return events
}

// Next resolves the catalog against now and returns the n soonest
// occurrences. An anchor at exactly now rolls to tomorrow; every
// returned occurrence is strictly in the future.
func Next(now time.Time, n int) []Occurrence {
	catalog := Catalog()
	occurrences := make([]Occurrence, 0, len(catalog))

	for _, e := range catalog {
		at := time.Date(now.Year(), now.Month(), now.Day(), e.Hour, e.Minute, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		occurrences = append(occurrences, Occurrence{Event: e, At: at})
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].At.Before(occurrences[j].At)
	})

	if n < len(occurrences) {
		occurrences = occurrences[:n]
	}
	return occurrences
}

// FormatCountdown renders a remaining duration as HH:MM:SS, or MM:SS
// under an hour. Negative durations mean the window is open.
func FormatCountdown(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		return "ACTIVE NOW"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
