package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	clockLayout = "15:04"
)

// now is a test seam.
var now = time.Now

func (a *App) parseDay(s string) (time.Time, error) {
	if s == "" {
		return a.profile.DayKey(now()), nil
	}
	d, err := time.ParseInLocation(dayLayout, s, a.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want yyyy-mm-dd", s)
	}
	return d, nil
}

func (a *App) location() *time.Location {
	if a.profile.Loc != nil {
		return a.profile.Loc
	}
	return time.Local
}

func (a *App) parseClock(day time.Time, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	c, err := time.ParseInLocation(clockLayout, s, a.location())
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, want hh:mm", s)
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, a.location())
	return &t, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// AddEvent plans a study session on the profile calendar.
func (a *App) AddEvent(_ context.Context) error {
	dayText, err := getSimpleText(a.reader, "Date (yyyy-mm-dd, empty for today)", a.out)
	if err != nil {
		return err
	}
	day, err := a.parseDay(dayText)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (empty for %q)", models.DefaultEventTitle), a.out)
	if err != nil {
		return err
	}
	course, err := getSimpleText(a.reader, "Course (optional)", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location (optional)", a.out)
	if err != nil {
		return err
	}
	startText, err := getSimpleText(a.reader, "Start time hh:mm (optional)", a.out)
	if err != nil {
		return err
	}
	endText, err := getSimpleText(a.reader, "End time hh:mm (optional)", a.out)
	if err != nil {
		return err
	}
	participants, err := getList(a.reader, "Participants", a.out)
	if err != nil {
		return err
	}

	start, err := a.parseClock(day, startText)
	if err != nil {
		return err
	}
	end, err := a.parseClock(day, endText)
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("end time %s is before start time %s", endText, startText)
	}

	e := models.NewStudyEvent(day, participants...)
	if t := strings.TrimSpace(title); t != "" {
		e.Title = t
	}
	e.Course = optional(course)
	e.Location = optional(location)
	e.StartTime = start
	e.EndTime = end

	a.profile.AddEvent(e)
	a.printf("Added %q on %s.\n", e.Title, day.Format(dayLayout))
	return nil
}

// Events lists the study sessions of a month, the current one by default.
func (a *App) Events(_ context.Context, month string) error {
	var from time.Time
	if month == "" {
		n := now().In(a.location())
		from = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, a.location())
	} else {
		m, err := time.ParseInLocation(monthLayout, month, a.location())
		if err != nil {
			return fmt.Errorf("invalid month %q, want yyyy-mm", month)
		}
		from = m
	}
	to := from.AddDate(0, 1, 0)

	events := a.profile.EventsBetween(from, to)
	if len(events) == 0 {
		a.printf("No study sessions in %s.\n", from.Format(monthLayout))
		return nil
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %s", e.Day.Format(dayLayout), e.Title)
		if e.StartTime != nil {
			line += " " + e.StartTime.Format(clockLayout)
			if e.EndTime != nil {
				line += "-" + e.EndTime.Format(clockLayout)
			}
		}
		if e.Course != nil {
			line += " [" + *e.Course + "]"
		}
		if e.Location != nil {
			line += " @ " + *e.Location
		}
		if len(e.Participants) > 0 {
			line += " with " + strings.Join(e.Participants, ", ")
		}
		a.println(line)
	}
	return nil
}

// Avail sets the availability windows of a day. Windows are named by the
// study time they belong to and must be among the preferred times; no
// windows clears the day.
func (a *App) Avail(_ context.Context, args []string) error {
	day, err := a.parseDay(args[0])
	if err != nil {
		return err
	}

	allowed := map[models.TimeSlot]models.AvailabilityWindow{}
	for _, w := range models.AllowedWindows(a.profile.PreferredTimes) {
		allowed[windowSlot(w)] = w
	}

	var windows []models.AvailabilityWindow
	for _, arg := range args[1:] {
		slot, ok := models.ParseTimeSlot(arg)
		if !ok {
			return fmt.Errorf("unknown window %q, use morning, day or night", arg)
		}
		w, ok := allowed[slot]
		if !ok {
			return fmt.Errorf("%s is not one of your preferred study times", slot.Label())
		}
		windows = append(windows, w)
	}

	a.profile.SetAvailability(day, windows)
	got := a.profile.AvailabilityOn(day)
	if len(got) == 0 {
		a.printf("No availability on %s.\n", day.Format(dayLayout))
		return nil
	}
	labels := make([]string, 0, len(got))
	for _, w := range got {
		labels = append(labels, w.Label())
	}
	a.printf("Available on %s: %s\n", day.Format(dayLayout), strings.Join(labels, ", "))
	return nil
}

func windowSlot(w models.AvailabilityWindow) models.TimeSlot {
	switch w {
	case models.WindowMorning9to11:
		return models.TimeMorning
	case models.WindowDay4to7:
		return models.TimeDay
	}
	return models.TimeNight
}
