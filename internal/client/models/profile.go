package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the signed-in user's own, mutable profile. It is owned by the
// session and is not safe for concurrent use.
//
// Availability and Events are keyed by day (local midnight in Loc). Days
// with nothing in them have no key at all.
type Profile struct {
	Name    string
	Email   string
	Majors  []string
	Minors  []string
	College string
	Courses []string

	PreferredTimes     map[TimeSlot]bool
	PreferredLocations map[LocationKind]bool

	Availability map[time.Time]map[AvailabilityWindow]bool
	Events       map[time.Time][]StudyEvent

	Photo []byte

	// Loc is the calendar used to compute day keys; nil means time.Local.
	Loc *time.Location
}

func NewProfile() *Profile {
	return &Profile{
		PreferredTimes:     map[TimeSlot]bool{},
		PreferredLocations: map[LocationKind]bool{},
		Availability:       map[time.Time]map[AvailabilityWindow]bool{},
		Events:             map[time.Time][]StudyEvent{},
	}
}

func (p *Profile) location() *time.Location {
	if p.Loc != nil {
		return p.Loc
	}
	return time.Local
}

// DayKey truncates t to the start of its calendar day.
func (p *Profile) DayKey(t time.Time) time.Time {
	t = t.In(p.location())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location())
}

func (p *Profile) HasPhoto() bool {
	return p.Photo != nil
}

// AddCourse appends a trimmed course unless it is already present
// (case-insensitive). It reports whether the course was added.
func (p *Profile) AddCourse(course string) bool {
	course = strings.TrimSpace(course)
	if course == "" {
		return false
	}
	for _, c := range p.Courses {
		if strings.EqualFold(c, course) {
			return false
		}
	}
	p.Courses = append(p.Courses, course)
	return true
}

// RemoveCourse drops every case-insensitive match of course.
func (p *Profile) RemoveCourse(course string) {
	kept := p.Courses[:0]
	for _, c := range p.Courses {
		if !strings.EqualFold(c, course) {
			kept = append(kept, c)
		}
	}
	p.Courses = kept
}

func (p *Profile) ToggleTime(t TimeSlot) {
	if p.PreferredTimes == nil {
		p.PreferredTimes = map[TimeSlot]bool{}
	}
	if p.PreferredTimes[t] {
		delete(p.PreferredTimes, t)
		return
	}
	p.PreferredTimes[t] = true
}

// AddEvent files e under its day and keeps the day sorted.
func (p *Profile) AddEvent(e StudyEvent) {
	if p.Events == nil {
		p.Events = map[time.Time][]StudyEvent{}
	}
	key := p.DayKey(e.Day)
	list := append(p.Events[key], e)
	sort.SliceStable(list, func(i, j int) bool { return eventLess(list[i], list[j]) })
	p.Events[key] = list
}

// UpdateEvent replaces the event with the same id, moving it to another day
// if its Day changed.
func (p *Profile) UpdateEvent(e StudyEvent) {
	p.RemoveEvent(e.ID)
	p.AddEvent(e)
}

func (p *Profile) RemoveEvent(id uuid.UUID) {
	for key, list := range p.Events {
		kept := make([]StudyEvent, 0, len(list))
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(p.Events, key)
			continue
		}
		p.Events[key] = kept
	}
}

func (p *Profile) EventsOn(day time.Time) []StudyEvent {
	return p.Events[p.DayKey(day)]
}

// EventsBetween collects events from every day in [from, to), day by day.
func (p *Profile) EventsBetween(from, to time.Time) []StudyEvent {
	var out []StudyEvent
	end := p.DayKey(to)
	for day := p.DayKey(from); day.Before(end); day = p.DayKey(day.AddDate(0, 0, 1)) {
		out = append(out, p.Events[day]...)
	}
	return out
}

// SetAvailability replaces the windows for a day; an empty selection clears
// the day.
func (p *Profile) SetAvailability(day time.Time, windows []AvailabilityWindow) {
	if p.Availability == nil {
		p.Availability = map[time.Time]map[AvailabilityWindow]bool{}
	}
	key := p.DayKey(day)
	if len(windows) == 0 {
		delete(p.Availability, key)
		return
	}
	set := make(map[AvailabilityWindow]bool, len(windows))
	for _, w := range windows {
		set[w] = true
	}
	p.Availability[key] = set
}

// AvailabilityOn returns the windows for a day in canonical order.
func (p *Profile) AvailabilityOn(day time.Time) []AvailabilityWindow {
	set := p.Availability[p.DayKey(day)]
	var out []AvailabilityWindow
	for _, w := range []AvailabilityWindow{WindowMorning9to11, WindowDay4to7, WindowNight7to12} {
		if set[w] {
			out = append(out, w)
		}
	}
	return out
}
