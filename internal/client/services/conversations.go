package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/client/repositories/conversations"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
)

// ConversationStore is the in-memory list of matched users of the session
// user, optionally written through to a local repository.
//
// The list belongs to one owner at a time. When the session user changes,
// List and Contains stop reporting the previous owner's threads and the
// next AddMatch reloads the list for the new owner.
type ConversationStore struct {
	mu       sync.Mutex
	owner    int
	hasOwner bool
	threads  []models.ConversationThread
	index    map[int]struct{}

	repo    conversations.Repository
	session UserIDSource
	log     logging.Logger
	now     func() time.Time
}

// NewConversationStore creates a store. repo may be nil for a purely
// in-memory store; a nil session keeps every thread under one anonymous
// owner.
func NewConversationStore(repo conversations.Repository, session UserIDSource, log logging.Logger) *ConversationStore {
	return &ConversationStore{
		index:   make(map[int]struct{}),
		repo:    repo,
		session: session,
		log:     log,
		now:     time.Now,
	}
}

func (s *ConversationStore) currentOwner() (int, bool) {
	if s.session == nil {
		return 0, true
	}
	return s.session.UserID()
}

// ownedByLocked reports whether the in-memory list belongs to owner.
func (s *ConversationStore) ownedByLocked(owner int) bool {
	return s.hasOwner && s.owner == owner
}

func (s *ConversationStore) switchLocked(owner int, ok bool, threads []models.ConversationThread) {
	s.owner, s.hasOwner = owner, ok
	s.threads = make([]models.ConversationThread, 0, len(threads))
	s.index = make(map[int]struct{}, len(threads))
	for _, t := range threads {
		if _, dup := s.index[t.UserID]; dup {
			continue
		}
		s.index[t.UserID] = struct{}{}
		s.threads = append(s.threads, t)
	}
}

// Load replaces the in-memory list with the persisted threads of the session
// user. Without a session user the list is emptied.
func (s *ConversationStore) Load(ctx context.Context) error {
	owner, ok := s.currentOwner()

	var threads []models.ConversationThread
	if ok && s.repo != nil {
		var err error
		if threads, err = s.repo.List(ctx, owner); err != nil {
			return fmt.Errorf("load conversations: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchLocked(owner, ok, threads)
	return nil
}

// AddMatch appends a thread for user to the session user's list unless one
// already exists. It reports whether the list changed. Without a session user
// nothing is added. A failed write-through is logged and does not undo the
// in-memory add.
func (s *ConversationStore) AddMatch(ctx context.Context, user models.CandidateUser) bool {
	owner, ok := s.currentOwner()
	if !ok {
		s.log.Warn(ctx, "match without session user ignored", "user_id", user.UserID)
		return false
	}

	s.mu.Lock()
	stale := !s.ownedByLocked(owner)
	s.mu.Unlock()
	if stale {
		if err := s.Load(ctx); err != nil {
			s.log.Error(ctx, "reload conversations failed", "owner_id", owner, "error", err)
			s.mu.Lock()
			s.switchLocked(owner, true, nil)
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	if !s.ownedByLocked(owner) {
		// the session changed again while reloading
		s.mu.Unlock()
		return false
	}
	if _, ok := s.index[user.UserID]; ok {
		s.mu.Unlock()
		return false
	}
	t := models.ConversationThread{
		UserID:       user.UserID,
		Name:         user.Name,
		PrimaryMajor: user.PrimaryMajor,
		Courses:      append([]string(nil), user.Courses...),
		MatchedAt:    s.now(),
	}
	s.index[user.UserID] = struct{}{}
	s.threads = append(s.threads, t)
	s.mu.Unlock()

	if s.repo != nil {
		if _, err := s.repo.Insert(ctx, owner, t); err != nil {
			s.log.Error(ctx, "persist conversation failed", "owner_id", owner, "user_id", user.UserID, "error", err)
		}
	}
	return true
}

// List returns the session user's threads in the order they were added.
func (s *ConversationStore) List() []models.ConversationThread {
	owner, ok := s.currentOwner()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok || !s.ownedByLocked(owner) {
		return []models.ConversationThread{}
	}
	out := make([]models.ConversationThread, len(s.threads))
	copy(out, s.threads)
	return out
}

// Contains reports whether userID already has a thread of the session user.
func (s *ConversationStore) Contains(userID int) bool {
	owner, ok := s.currentOwner()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok || !s.ownedByLocked(owner) {
		return false
	}
	_, found := s.index[userID]
	return found
}

// Reset drops the in-memory threads. Persisted rows are left alone; the
// session clears them on logout.
func (s *ConversationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchLocked(0, false, nil)
}
