package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/client/services"
)

var errFeedFailed = errors.New("failed to load profiles")

// Explore loads the candidates sharing a course with the profile and shows
// the first card.
func (a *App) Explore(ctx context.Context) error {
	var uid *int
	if id, ok := a.session.UserID(); ok {
		uid = &id
	}

	candidates, err := a.feed.Load(ctx, a.profile, uid)
	if err != nil {
		if errors.Is(err, services.ErrFeedUnavailable) {
			a.log.Warn(ctx, "feed not loaded", "error", err)
			return errFeedFailed
		}
		return err
	}

	a.engine.Reset(candidates)
	if len(candidates) == 0 {
		if len(a.profile.Courses) == 0 {
			a.println("Add courses to your profile to find study partners.")
		} else {
			a.println("No study partners share your courses yet.")
		}
		return nil
	}
	a.printf("Found %d study partner(s).\n", len(candidates))
	a.showCurrent()
	return nil
}

func (a *App) Like(ctx context.Context) error {
	return a.decide(ctx, models.SwipeLike)
}

func (a *App) Dislike(ctx context.Context) error {
	return a.decide(ctx, models.SwipeDislike)
}

func (a *App) decide(ctx context.Context, status models.SwipeStatus) error {
	if _, ok := a.engine.Current(); !ok {
		return errors.New("nothing to swipe, run explore first")
	}
	if status == models.SwipeLike && !a.isLoggedIn() {
		return errLoginRequired
	}

	if a.engine.Decide(ctx, status) != services.OutcomeNone {
		a.showCurrent()
	}
	return nil
}

func (a *App) showCurrent() {
	c, ok := a.engine.Current()
	if !ok {
		return
	}
	pos, total := a.engine.Position()
	a.printf("[%d/%d] %s, %s\n", pos+1, total, c.Name, c.PrimaryMajor)
	if len(c.Courses) > 0 {
		a.printf("  courses:   %s\n", strings.Join(c.Courses, ", "))
	}
	if len(c.PreferredTimes) > 0 {
		labels := make([]string, 0, len(c.PreferredTimes))
		for _, t := range c.PreferredTimes {
			labels = append(labels, t.Label())
		}
		a.printf("  times:     %s\n", strings.Join(labels, ", "))
	}
	if len(c.PreferredLocations) > 0 {
		labels := make([]string, 0, len(c.PreferredLocations))
		for _, l := range c.PreferredLocations {
			labels = append(labels, l.Title())
		}
		a.printf("  locations: %s\n", strings.Join(labels, ", "))
	}
	a.println("  like (y) / dislike (n)")
}

// onSwipeEvent is the engine listener. It only prints.
func (a *App) onSwipeEvent(ev services.Event) {
	switch ev.Kind {
	case services.EventMatch:
		a.printf("It's a match! You and %s can study together.\n", ev.User.Name)
	case services.EventNavigateToConversations:
		a.printMatches()
	case services.EventWrapped:
		a.println("You've seen everyone, starting over.")
	}
}

// Matches lists matched users in the order the matches happened.
func (a *App) Matches(_ context.Context) error {
	a.printMatches()
	return nil
}

func (a *App) printMatches() {
	threads := a.store.List()
	if len(threads) == 0 {
		a.println("No matches yet.")
		return
	}
	a.println("Matches:")
	for _, t := range threads {
		a.printf("  %s (%s) %s, matched %s\n", t.Name, t.PrimaryMajor,
			strings.Join(t.Courses, ", "), t.MatchedAt.Format("2006-01-02 15:04"))
	}
}
