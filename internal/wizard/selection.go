package wizard

import (
	"strings"

	"packntrack/internal/trip"
)

// Selection is the user's input so far. It is a value: every change returns
// a new Selection and never mutates the receiver.
type Selection struct {
	city  string
	prefs []string
	days  int
}

func NewSelection() Selection {
	return Selection{days: trip.DefaultDays}
}

func (s Selection) City() string { return s.city }

func (s Selection) Days() int { return s.days }

// Prefs returns the selected tags in the order they were picked.
func (s Selection) Prefs() []string {
	return append([]string(nil), s.prefs...)
}

func (s Selection) HasPref(p string) bool {
	for _, x := range s.prefs {
		if x == p {
			return true
		}
	}
	return false
}

func (s Selection) WithCity(city string) Selection {
	s.city = city
	return s
}

// TogglePref adds p if absent, removes it if present.
func (s Selection) TogglePref(p string) Selection {
	next := make([]string, 0, len(s.prefs)+1)
	found := false
	for _, x := range s.prefs {
		if x == p {
			found = true
			continue
		}
		next = append(next, x)
	}
	if !found {
		next = append(next, p)
	}
	s.prefs = next
	return s
}

func (s Selection) WithDays(days int) Selection {
	s.days = days
	return s
}

// Request freezes the selection into what gets posted. Prefs is never nil so
// it encodes as [].
func (s Selection) Request() trip.TripRequest {
	return trip.TripRequest{
		City:  strings.TrimSpace(s.city),
		Prefs: append([]string{}, s.prefs...),
		Days:  s.days,
	}
}
