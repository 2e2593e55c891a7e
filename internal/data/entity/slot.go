package entity

import "strings"

// Slot is a bookable one-hour interval of a court on a given day.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Key identifies the slot inside one day's availability.
func (s Slot) Key() string {
	return ClockLabel(s.StartTime) + "-" + ClockLabel(s.EndTime)
}

func (s Slot) Label() string {
	return ClockLabel(s.StartTime) + " - " + ClockLabel(s.EndTime)
}

// Same compares two slots ignoring the seconds part the backend may add.
func (s Slot) Same(other Slot) bool {
	return s.Key() == other.Key()
}

// ClockLabel trims "HH:MM:SS" to "HH:MM".
func ClockLabel(t string) string {
	t = strings.TrimSpace(t)
	if len(t) == len("15:04:05") && strings.Count(t, ":") == 2 {
		return t[:5]
	}
	return t
}

// Availability is the response of the availability endpoint.
type Availability struct {
	AvailableSlots []Slot `json:"available_slots"`
}
