package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
)

// ResourceKind selects the backend collection a label resolves against.
type ResourceKind int

const (
	ResourceCourse ResourceKind = iota
	ResourceMajor
)

func (k ResourceKind) String() string {
	if k == ResourceMajor {
		return "major"
	}
	return "course"
}

// studyTimeIDs are fixed on the backend.
var studyTimeIDs = map[models.TimeSlot]int{
	models.TimeMorning: 1,
	models.TimeDay:     2,
	models.TimeNight:   3,
}

// ResourceResolver turns free-text course codes and major names into
// backend ids. It first tries to create the resource and falls back to
// looking it up in the full listing, so repeated calls never create
// duplicates on a backend that rejects them.
type ResourceResolver struct {
	client  client.Client
	log     logging.Logger
	metrics *Metrics
}

func NewResourceResolver(c client.Client, log logging.Logger, m *Metrics) *ResourceResolver {
	if m == nil {
		m = NewMetrics(nil)
	}
	return &ResourceResolver{client: c, log: log, metrics: m}
}

// ResolveOrCreate returns the id for label, or false when it cannot be
// resolved. Misses are logged, never returned as errors.
func (r *ResourceResolver) ResolveOrCreate(ctx context.Context, label string, kind ResourceKind) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	var (
		id int
		ok bool
	)
	switch kind {
	case ResourceMajor:
		id, ok = r.resolveMajor(ctx, label)
	default:
		id, ok = r.resolveCourse(ctx, strings.ToUpper(label))
	}

	r.metrics.Resolutions.WithLabelValues(kind.String(), outcome(ok)).Inc()
	if !ok {
		r.log.Warn(ctx, "resource not resolved", "kind", kind.String(), "label", label)
	}
	return id, ok
}

func (r *ResourceResolver) resolveCourse(ctx context.Context, code string) (int, bool) {
	id, err := r.client.CreateCourse(ctx, code)
	if err == nil && id != nil {
		return *id, true
	}
	if err != nil {
		r.log.Debug(ctx, "create course failed, falling back to listing", "code", code, "error", err)
	}

	courses, err := r.client.ListCourses(ctx)
	if err != nil {
		r.log.Warn(ctx, "list courses failed", "error", err)
		return 0, false
	}
	for _, c := range courses {
		if c.Code != nil && strings.ToUpper(*c.Code) == code {
			return c.ID, true
		}
	}
	return 0, false
}

func (r *ResourceResolver) resolveMajor(ctx context.Context, name string) (int, bool) {
	id, err := r.client.CreateMajor(ctx, name)
	if err == nil && id != nil {
		return *id, true
	}
	if err != nil {
		r.log.Debug(ctx, "create major failed, falling back to listing", "name", name, "error", err)
	}

	majors, err := r.client.ListMajors(ctx)
	if err != nil {
		r.log.Warn(ctx, "list majors failed", "error", err)
		return 0, false
	}
	target := strings.ToLower(name)
	for _, m := range majors {
		if m.Name != nil && strings.ToLower(strings.TrimSpace(*m.Name)) == target {
			return m.ID, true
		}
	}
	return 0, false
}

// ResolveBatch resolves course codes one by one, in input order. Empty
// codes and misses are dropped; duplicates are not collapsed.
func (r *ResourceResolver) ResolveBatch(ctx context.Context, labels []string) []int {
	ids := make([]int, 0, len(labels))
	for _, l := range labels {
		code := strings.ToUpper(strings.TrimSpace(l))
		if code == "" {
			continue
		}
		if id, ok := r.ResolveOrCreate(ctx, code, ResourceCourse); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ResolveStudyTimes maps the selected slots to their fixed backend ids in
// morning, day, night order.
func (r *ResourceResolver) ResolveStudyTimes(selected map[models.TimeSlot]bool) []int {
	var ids []int
	for _, slot := range models.TimeSlots {
		if selected[slot] {
			ids = append(ids, studyTimeIDs[slot])
		}
	}
	return ids
}
