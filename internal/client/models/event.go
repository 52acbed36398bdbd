package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultEventTitle = "Study session"

// StudyEvent is a study session planned by the profile owner.
type StudyEvent struct {
	ID           uuid.UUID
	Day          time.Time
	Title        string
	Participants []string
	Course       *string
	Location     *string
	StartTime    *time.Time
	EndTime      *time.Time
	Notes        *string
}

// NewStudyEvent creates an event with a fresh id and the default title.
func NewStudyEvent(day time.Time, participants ...string) StudyEvent {
	return StudyEvent{
		ID:           uuid.New(),
		Day:          day,
		Title:        DefaultEventTitle,
		Participants: participants,
	}
}

func (e StudyEvent) sortTime() time.Time {
	if e.StartTime != nil {
		return *e.StartTime
	}
	return e.Day
}

// eventLess orders events by start time (or day), then case-insensitive
// title, then id.
func eventLess(a, b StudyEvent) bool {
	at, bt := a.sortTime(), b.sortTime()
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	al, bl := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if al != bl {
		return al < bl
	}
	return a.ID.String() < b.ID.String()
}
