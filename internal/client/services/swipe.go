package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
)

// DefaultMatchDisplayDelay is how long a match stays on screen before the
// engine moves on to the conversation list.
const DefaultMatchDisplayDelay = 2 * time.Second

type EventKind int

const (
	// EventMatch fires when the backend reports a mutual LIKE.
	EventMatch EventKind = iota + 1
	// EventNavigateToConversations fires once per match, after the display delay.
	EventNavigateToConversations
	// EventWrapped fires when advancing returns the cursor to the first card.
	EventWrapped
)

func (k EventKind) String() string {
	switch k {
	case EventMatch:
		return "match"
	case EventNavigateToConversations:
		return "navigate_to_conversations"
	case EventWrapped:
		return "wrapped"
	}
	return "unknown"
}

type Event struct {
	Kind    EventKind
	User    models.CandidateUser
	MatchID *int
}

// Listener receives engine events on the goroutine that produced them. It
// must return quickly.
type Listener func(Event)

// Outcome describes what a Decide call did.
type Outcome int

const (
	// OutcomeNone: nothing to decide on, or a LIKE without a session.
	OutcomeNone Outcome = iota
	// OutcomeAdvanced: the card was decided and the cursor moved on.
	OutcomeAdvanced
	// OutcomeMatched: the LIKE was mutual; the cursor moved on after the delay.
	OutcomeMatched
)

// UserIDSource provides the swiping user's id. SessionManager implements it.
type UserIDSource interface {
	UserID() (int, bool)
}

// SwipeEngine walks a queue of candidates and records the user's decisions.
//
// Decide calls are serialized by their own mutex so that at most one card
// is being decided at a time. The queue and cursor are guarded separately
// and never locked across a network call, so Current stays responsive
// while a LIKE is in flight.
type SwipeEngine struct {
	decideMu sync.Mutex

	mu     sync.Mutex
	queue  []models.CandidateUser
	cursor int
	// gen changes on every Reset so that a decision finishing after a reset
	// does not move the new queue.
	gen uint64

	client   client.Client
	session  UserIDSource
	store    *ConversationStore
	listener Listener
	delay    time.Duration
	log      logging.Logger
	metrics  *Metrics

	pending sync.WaitGroup
}

type SwipeOption func(*SwipeEngine)

func WithListener(l Listener) SwipeOption {
	return func(e *SwipeEngine) { e.listener = l }
}

func WithMatchDisplayDelay(d time.Duration) SwipeOption {
	return func(e *SwipeEngine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

func NewSwipeEngine(c client.Client, session UserIDSource, store *ConversationStore, log logging.Logger, m *Metrics, opts ...SwipeOption) *SwipeEngine {
	if m == nil {
		m = NewMetrics(nil)
	}
	e := &SwipeEngine{
		client:  c,
		session: session,
		store:   store,
		delay:   DefaultMatchDisplayDelay,
		log:     log,
		metrics: m,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset replaces the queue and puts the cursor on the first card.
func (e *SwipeEngine) Reset(queue []models.CandidateUser) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = append([]models.CandidateUser(nil), queue...)
	e.cursor = 0
	e.gen++
}

// Current returns the card under the cursor.
func (e *SwipeEngine) Current() (models.CandidateUser, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return models.CandidateUser{}, false
	}
	return e.queue[e.cursor], true
}

// Position returns the cursor and the queue length.
func (e *SwipeEngine) Position() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor, len(e.queue)
}

func (e *SwipeEngine) current() (models.CandidateUser, uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return models.CandidateUser{}, e.gen, false
	}
	return e.queue[e.cursor], e.gen, true
}

// Advance moves to the next card, wrapping around to the first one.
func (e *SwipeEngine) Advance() {
	e.mu.Lock()
	wrapped, ok := e.advanceLocked()
	e.mu.Unlock()
	if ok && wrapped {
		e.emit(Event{Kind: EventWrapped})
	}
}

// advanceFrom advances only if the queue was not reset since gen.
func (e *SwipeEngine) advanceFrom(gen uint64) {
	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		return
	}
	wrapped, ok := e.advanceLocked()
	e.mu.Unlock()
	if ok && wrapped {
		e.emit(Event{Kind: EventWrapped})
	}
}

func (e *SwipeEngine) advanceLocked() (wrapped, ok bool) {
	if len(e.queue) == 0 {
		return false, false
	}
	e.cursor = (e.cursor + 1) % len(e.queue)
	return e.cursor == 0, true
}

func (e *SwipeEngine) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// Decide applies status to the current card.
//
// A DISLIKE is recorded in the background and the cursor moves on at once;
// without a session the record is skipped but the card still moves on.
// A LIKE needs a session and waits for the backend. Anything but a mutual
// match moves on immediately. A match is added to the conversation store,
// announced with EventMatch, held for the display delay and followed by
// EventNavigateToConversations.
func (e *SwipeEngine) Decide(ctx context.Context, status models.SwipeStatus) Outcome {
	e.decideMu.Lock()
	defer e.decideMu.Unlock()

	user, gen, ok := e.current()
	if !ok {
		return OutcomeNone
	}

	if status == models.SwipeDislike {
		if me, ok := e.session.UserID(); ok {
			e.recordInBackground(ctx, me, user.UserID)
		} else {
			e.log.Debug(ctx, "dislike without session, not recorded", "target_id", user.UserID)
		}
		e.advanceFrom(gen)
		return OutcomeAdvanced
	}

	me, ok := e.session.UserID()
	if !ok {
		e.log.Debug(ctx, "like without session ignored", "target_id", user.UserID)
		return OutcomeNone
	}

	e.metrics.Swipes.WithLabelValues(string(models.SwipeLike)).Inc()
	res, err := e.client.RecordSwipe(ctx, models.SwipeDecision{SwiperID: me, TargetID: user.UserID, Status: models.SwipeLike})
	if err != nil {
		e.log.Warn(ctx, "like not recorded", "swiper_id", me, "target_id", user.UserID, "error", err)
		e.metrics.SwipeFailures.WithLabelValues(string(models.SwipeLike)).Inc()
		e.advanceFrom(gen)
		return OutcomeAdvanced
	}
	if !res.Matched {
		e.log.Debug(ctx, "like recorded, no match yet", "swiper_id", me, "target_id", user.UserID)
		e.advanceFrom(gen)
		return OutcomeAdvanced
	}

	e.log.Info(ctx, "match", "swiper_id", me, "target_id", user.UserID)
	e.metrics.Matches.Inc()
	if e.store != nil {
		e.store.AddMatch(ctx, user)
	}
	e.emit(Event{Kind: EventMatch, User: user, MatchID: res.MatchID})

	if e.delay > 0 {
		t := time.NewTimer(e.delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	e.advanceFrom(gen)
	e.emit(Event{Kind: EventNavigateToConversations, User: user, MatchID: res.MatchID})
	return OutcomeMatched
}

func (e *SwipeEngine) recordInBackground(ctx context.Context, me, target int) {
	// The record outlives the caller's context; the transport timeout bounds it.
	ctx = context.WithoutCancel(ctx)

	e.metrics.Swipes.WithLabelValues(string(models.SwipeDislike)).Inc()
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		if _, err := e.client.RecordSwipe(ctx, models.SwipeDecision{SwiperID: me, TargetID: target, Status: models.SwipeDislike}); err != nil {
			e.log.Warn(ctx, "dislike not recorded", "swiper_id", me, "target_id", target, "error", err)
			e.metrics.SwipeFailures.WithLabelValues(string(models.SwipeDislike)).Inc()
			return
		}
		e.log.Debug(ctx, "dislike recorded", "swiper_id", me, "target_id", target)
	}()
}

// Wait blocks until background swipe records have finished.
func (e *SwipeEngine) Wait() {
	e.pending.Wait()
}
