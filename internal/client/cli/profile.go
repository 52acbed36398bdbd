package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
)

func newProfileLike(p *models.Profile) *models.Profile {
	np := models.NewProfile()
	np.Loc = p.Loc
	return np
}

// Profile walks the user through the profile fields, resolves courses and
// majors against the backend and submits the result.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	p := a.profile

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	college, err := getSimpleText(a.reader, "Enter your college", a.out)
	if err != nil {
		return err
	}
	majors, err := getList(a.reader, "Enter majors", a.out)
	if err != nil {
		return err
	}
	minors, err := getList(a.reader, "Enter minors", a.out)
	if err != nil {
		return err
	}
	courses, err := getList(a.reader, "Enter courses", a.out)
	if err != nil {
		return err
	}
	times, err := getList(a.reader, "Preferred study times: morning, day, night", a.out)
	if err != nil {
		return err
	}
	area, err := getSimpleText(a.reader, "Preferred study area: library, cafe or study hall", a.out)
	if err != nil {
		return err
	}

	p.Name = name
	p.College = college
	p.Majors = majors
	p.Minors = minors
	p.Courses = nil
	for _, c := range courses {
		p.AddCourse(c)
	}

	p.PreferredTimes = map[models.TimeSlot]bool{}
	for _, t := range times {
		slot, ok := models.ParseTimeSlot(t)
		if !ok {
			a.printf("Unknown study time %q skipped\n", t)
			continue
		}
		p.PreferredTimes[slot] = true
	}

	p.PreferredLocations = map[models.LocationKind]bool{}
	if area != "" {
		loc, ok := models.ParseLocationKind(area)
		if !ok {
			a.printf("Unknown study area %q skipped\n", area)
		} else {
			p.PreferredLocations[loc] = true
		}
	}

	req, err := a.session.BuildProfileRequest(ctx, p)
	if err != nil {
		return err
	}
	if !a.session.CreateOrUpdateProfile(ctx, req) {
		msg := a.session.Session().LastError
		if msg == "" {
			msg = "profile was not saved"
		}
		return errors.New(msg)
	}

	a.printf("Profile saved: %d course(s), %d major(s).\n", len(req.CourseIDs), len(req.MajorIDs))
	return nil
}

// AddCourse adds a course code to the local profile.
func (a *App) AddCourse(_ context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !a.profile.AddCourse(code) {
		return fmt.Errorf("course %q is empty or already on your profile", code)
	}
	a.printf("Courses: %s\n", strings.Join(a.profile.Courses, ", "))
	return nil
}
