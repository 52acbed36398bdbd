package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
)

// ErrFeedUnavailable means the candidate listing could not be fetched or
// decoded. An empty feed with a nil error means nobody matched.
var ErrFeedUnavailable = errors.New("failed to load profiles")

const (
	unknownUserName = "Unknown User"
	unknownMajor    = "N/A"
)

// CandidateFeed builds the queue of swipe candidates for the current user.
type CandidateFeed struct {
	client  client.Client
	log     logging.Logger
	metrics *Metrics
}

func NewCandidateFeed(c client.Client, log logging.Logger, m *Metrics) *CandidateFeed {
	if m == nil {
		m = NewMetrics(nil)
	}
	return &CandidateFeed{client: c, log: log, metrics: m}
}

// Load lists every profile and keeps the ones that share at least one course
// with p. Profiles without a user id and the caller's own profile are
// skipped. The backend order is preserved.
func (f *CandidateFeed) Load(ctx context.Context, p *models.Profile, sessionUserID *int) ([]models.CandidateUser, error) {
	mine := normalizedCourses(p.Courses)
	if len(mine) == 0 {
		f.log.Debug(ctx, "no courses on profile, feed is empty")
		f.metrics.FeedLoads.WithLabelValues("empty").Inc()
		f.metrics.FeedCandidates.Set(0)
		return []models.CandidateUser{}, nil
	}

	profiles, err := f.client.ListProfiles(ctx)
	if err != nil {
		f.log.Warn(ctx, "list profiles failed", "error", err)
		f.metrics.FeedLoads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}

	out := make([]models.CandidateUser, 0, len(profiles))
	for _, rp := range profiles {
		if rp.UserID == nil {
			continue
		}
		if sessionUserID != nil && *rp.UserID == *sessionUserID {
			continue
		}
		if !sharesCourse(mine, rp.Courses) {
			continue
		}
		c := CandidateFromProfile(rp)
		if c.UserID <= 0 {
			continue
		}
		out = append(out, c)
	}

	f.log.Debug(ctx, "feed loaded", "profiles", len(profiles), "candidates", len(out))
	f.metrics.FeedLoads.WithLabelValues("ok").Inc()
	f.metrics.FeedCandidates.Set(float64(len(out)))
	return out, nil
}

func normalizedCourses(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

func sharesCourse(mine map[string]struct{}, theirs []client.CourseRef) bool {
	for _, ref := range theirs {
		if ref.Code == nil {
			continue
		}
		if _, ok := mine[strings.ToUpper(strings.TrimSpace(*ref.Code))]; ok {
			return true
		}
	}
	return false
}

// CandidateFromProfile projects a listed profile onto a swipe card. The id
// prefers user_id over the profile id; 0 means neither was present.
func CandidateFromProfile(rp client.RichProfile) models.CandidateUser {
	c := models.CandidateUser{
		Name:               unknownUserName,
		PrimaryMajor:       unknownMajor,
		Courses:            []string{},
		PreferredTimes:     []models.TimeSlot{},
		PreferredLocations: []models.LocationKind{},
	}

	switch {
	case rp.UserID != nil:
		c.UserID = *rp.UserID
	case rp.ID != nil:
		c.UserID = *rp.ID
	}

	if rp.Name != nil {
		if n := strings.TrimSpace(*rp.Name); n != "" {
			c.Name = n
		}
	}

	if len(rp.Majors) > 0 && rp.Majors[0].Name != nil {
		if m := strings.TrimSpace(*rp.Majors[0].Name); m != "" {
			c.PrimaryMajor = m
		}
	}

	for _, ref := range rp.Courses {
		if ref.Code == nil {
			continue
		}
		if code := strings.TrimSpace(*ref.Code); code != "" {
			c.Courses = append(c.Courses, code)
		}
	}

	for _, st := range rp.StudyTimes {
		if st.Name == nil {
			continue
		}
		if slot, ok := models.ParseTimeSlot(*st.Name); ok {
			c.PreferredTimes = append(c.PreferredTimes, slot)
		}
	}

	if rp.StudyArea != nil && rp.StudyArea.Name != nil {
		if loc, ok := models.ParseLocationKind(*rp.StudyArea.Name); ok {
			c.PreferredLocations = append(c.PreferredLocations, loc)
		}
	}
	return c
}
