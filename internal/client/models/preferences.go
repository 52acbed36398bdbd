package models

import "strings"

// TimeSlot is a preferred part of the day for studying.
type TimeSlot string

const (
	TimeMorning TimeSlot = "morning"
	TimeDay     TimeSlot = "day"
	TimeNight   TimeSlot = "night"
)

// TimeSlots lists all slots in canonical order.
var TimeSlots = []TimeSlot{TimeMorning, TimeDay, TimeNight}

func (t TimeSlot) Label() string {
	switch t {
	case TimeMorning:
		return "Morning"
	case TimeDay:
		return "Day"
	case TimeNight:
		return "Night"
	}
	return string(t)
}

// ParseTimeSlot matches a backend study-time name case-insensitively.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return TimeMorning, true
	case "day":
		return TimeDay, true
	case "night":
		return TimeNight, true
	}
	return "", false
}

// LocationKind is a preferred study location.
type LocationKind string

const (
	LocationLibrary   LocationKind = "library"
	LocationCafe      LocationKind = "cafe"
	LocationStudyHall LocationKind = "study_hall"
)

var LocationKinds = []LocationKind{LocationLibrary, LocationCafe, LocationStudyHall}

func (l LocationKind) Title() string {
	switch l {
	case LocationLibrary:
		return "Library"
	case LocationCafe:
		return "Cafe"
	case LocationStudyHall:
		return "Study Hall"
	}
	return string(l)
}

// ParseLocationKind matches a backend study-area name ("study hall") or a
// local identifier ("study_hall").
func ParseLocationKind(s string) (LocationKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "library":
		return LocationLibrary, true
	case "cafe":
		return LocationCafe, true
	case "study hall", "study_hall", "studyhall":
		return LocationStudyHall, true
	}
	return "", false
}

// AvailabilityWindow is a bookable window within a day.
type AvailabilityWindow string

const (
	WindowMorning9to11 AvailabilityWindow = "morning_9_11"
	WindowDay4to7      AvailabilityWindow = "day_4_7"
	WindowNight7to12   AvailabilityWindow = "night_7_12"
)

func (w AvailabilityWindow) Label() string {
	switch w {
	case WindowMorning9to11:
		return "9–11am"
	case WindowDay4to7:
		return "4–7pm"
	case WindowNight7to12:
		return "7–12am"
	}
	return string(w)
}

// AllowedWindows returns the windows that match the selected time slots,
// ordered morning, day, night.
func AllowedWindows(selected map[TimeSlot]bool) []AvailabilityWindow {
	var out []AvailabilityWindow
	if selected[TimeMorning] {
		out = append(out, WindowMorning9to11)
	}
	if selected[TimeDay] {
		out = append(out, WindowDay4to7)
	}
	if selected[TimeNight] {
		out = append(out, WindowNight7to12)
	}
	return out
}
