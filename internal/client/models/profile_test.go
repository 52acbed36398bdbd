package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUTCProfile() *Profile {
	p := NewProfile()
	p.Loc = time.UTC
	return p
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestDayKey_TruncatesToMidnight(t *testing.T) {
	p := newUTCProfile()
	got := p.DayKey(time.Date(2025, 12, 4, 17, 45, 3, 99, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestDayKey_UsesProfileLocation(t *testing.T) {
	p := NewProfile()
	p.Loc = time.FixedZone("UTC-5", -5*3600)

	// 02:00 UTC on the 5th is still the 4th five hours west.
	got := p.DayKey(time.Date(2025, 12, 5, 2, 0, 0, 0, time.UTC))
	y, m, d := got.Date()
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)
	assert.Equal(t, 4, d)
}

func TestAddEvent_SortsByStartThenTitle(t *testing.T) {
	p := newUTCProfile()
	day := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)

	late := NewStudyEvent(day.Add(9 * time.Hour))
	late.Title = "late"
	late.StartTime = ptrTime(day.Add(18 * time.Hour))

	b := NewStudyEvent(day.Add(3 * time.Hour))
	b.Title = "beta"
	b.StartTime = ptrTime(day.Add(10 * time.Hour))

	a := NewStudyEvent(day.Add(1 * time.Hour))
	a.Title = "Alpha"
	a.StartTime = ptrTime(day.Add(10 * time.Hour))

	noStart := NewStudyEvent(day.Add(5 * time.Hour))
	noStart.Title = "no start"

	p.AddEvent(late)
	p.AddEvent(b)
	p.AddEvent(a)
	p.AddEvent(noStart)

	got := p.EventsOn(day.Add(23 * time.Hour))
	require.Len(t, got, 4)
	assert.Equal(t, []string{"no start", "Alpha", "beta", "late"},
		[]string{got[0].Title, got[1].Title, got[2].Title, got[3].Title})
	assert.Len(t, p.Events, 1)
}

func TestAddEvent_TieBrokenByID(t *testing.T) {
	p := newUTCProfile()
	day := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)

	e1 := StudyEvent{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Day: day, Title: "Same"}
	e2 := StudyEvent{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Day: day, Title: "same"}

	p.AddEvent(e1)
	p.AddEvent(e2)

	got := p.EventsOn(day)
	require.Len(t, got, 2)
	assert.Equal(t, e2.ID, got[0].ID)
	assert.Equal(t, e1.ID, got[1].ID)
}

func TestRemoveEvent_DropsEmptyDay(t *testing.T) {
	p := newUTCProfile()
	day := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)
	e := NewStudyEvent(day, "You", "Winnie")

	p.AddEvent(e)
	require.Len(t, p.Events, 1)

	p.RemoveEvent(e.ID)
	assert.Empty(t, p.Events)
	assert.Nil(t, p.EventsOn(day))
}

func TestUpdateEvent_MovesDay(t *testing.T) {
	p := newUTCProfile()
	day1 := time.Date(2025, 12, 4, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 12, 6, 10, 0, 0, 0, time.UTC)

	e := NewStudyEvent(day1)
	p.AddEvent(e)

	e.Day = day2
	p.UpdateEvent(e)

	assert.Empty(t, p.EventsOn(day1))
	require.Len(t, p.EventsOn(day2), 1)
	assert.Len(t, p.Events, 1)
}

func TestEventsBetween_DayOrder(t *testing.T) {
	p := newUTCProfile()
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	third := NewStudyEvent(start.AddDate(0, 0, 2))
	third.Title = "third"
	first := NewStudyEvent(start)
	first.Title = "first"
	outside := NewStudyEvent(start.AddDate(0, 1, 0))

	p.AddEvent(third)
	p.AddEvent(first)
	p.AddEvent(outside)

	got := p.EventsBetween(start, start.AddDate(0, 1, 0))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "third", got[1].Title)
}

func TestSetAvailability_EmptyDeletesKey(t *testing.T) {
	p := newUTCProfile()
	day := time.Date(2025, 12, 4, 15, 0, 0, 0, time.UTC)

	p.SetAvailability(day, []AvailabilityWindow{WindowNight7to12, WindowMorning9to11})
	assert.Equal(t, []AvailabilityWindow{WindowMorning9to11, WindowNight7to12}, p.AvailabilityOn(day))

	p.SetAvailability(day, nil)
	assert.Empty(t, p.Availability)
	assert.Nil(t, p.AvailabilityOn(day))
}

func TestAllowedWindows(t *testing.T) {
	got := AllowedWindows(map[TimeSlot]bool{TimeNight: true, TimeMorning: true})
	assert.Equal(t, []AvailabilityWindow{WindowMorning9to11, WindowNight7to12}, got)
	assert.Empty(t, AllowedWindows(nil))
}

func TestCourses_AddAndRemoveCaseInsensitive(t *testing.T) {
	p := newUTCProfile()

	assert.True(t, p.AddCourse("  cs 101 "))
	assert.False(t, p.AddCourse("CS 101"))
	assert.False(t, p.AddCourse("   "))
	assert.True(t, p.AddCourse("MATH 221"))
	assert.Equal(t, []string{"cs 101", "MATH 221"}, p.Courses)

	p.RemoveCourse("Cs 101")
	assert.Equal(t, []string{"MATH 221"}, p.Courses)
}

func TestToggleTime(t *testing.T) {
	p := &Profile{}
	p.ToggleTime(TimeDay)
	assert.True(t, p.PreferredTimes[TimeDay])
	p.ToggleTime(TimeDay)
	assert.Empty(t, p.PreferredTimes)
}

func TestSession_Authenticated(t *testing.T) {
	id := 7
	uid, ok := Session{IsAuthenticated: true, UserID: &id}.Authenticated()
	assert.True(t, ok)
	assert.Equal(t, 7, uid)

	_, ok = Session{IsAuthenticated: true}.Authenticated()
	assert.False(t, ok)

	_, ok = Session{UserID: &id}.Authenticated()
	assert.False(t, ok)
}

func TestParsePreferences(t *testing.T) {
	ts, ok := ParseTimeSlot(" Night ")
	assert.True(t, ok)
	assert.Equal(t, TimeNight, ts)
	_, ok = ParseTimeSlot("evening")
	assert.False(t, ok)

	loc, ok := ParseLocationKind("Study Hall")
	assert.True(t, ok)
	assert.Equal(t, LocationStudyHall, loc)
	_, ok = ParseLocationKind("gym")
	assert.False(t, ok)
}

func TestHasPhoto(t *testing.T) {
	p := NewProfile()
	assert.False(t, p.HasPhoto())

	p.Photo = []byte{}
	assert.True(t, p.HasPhoto(), "an empty but set photo still counts")

	p.Photo = nil
	assert.False(t, p.HasPhoto())
}
