// Package services contains the application services of the StudyBuddy
// client: session handling, resource resolution, the candidate feed, the
// swipe engine and the conversation store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/client/repositories/conversations"
	"github.com/dmitrijs2005/studybuddy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studybuddy/internal/dbx"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
)

// ErrNotAuthenticated is returned by operations that need a session user id.
var ErrNotAuthenticated = errors.New("not authenticated")

const (
	msgLoginFailed  = "Login failed."
	msgSignupFailed = "Signup failed."
)

// SessionManager owns the authentication state of the client.
//
// Contract:
//   - RestoreOnLaunch: trust the persisted user id, if any.
//   - Login / SignUp: authenticate against the backend and persist the id.
//   - CreateOrUpdateProfile: submit the profile payload.
//   - Logout: forget the id and the locally stored conversation threads.
//
// Every state change happens under one mutex; concurrent calls are allowed
// and the last one to finish wins.
type SessionManager struct {
	mu       sync.Mutex
	state    models.Session
	inflight int

	client   client.Client
	db       *sql.DB
	resolver *ResourceResolver
	log      logging.Logger
	metrics  *Metrics
}

// NewSessionManager builds a manager over the backend client and the local
// database holding the persisted id.
func NewSessionManager(c client.Client, db *sql.DB, resolver *ResourceResolver, log logging.Logger, m *Metrics) *SessionManager {
	if m == nil {
		m = NewMetrics(nil)
	}
	return &SessionManager{client: c, db: db, resolver: resolver, log: log, metrics: m}
}

func (s *SessionManager) metadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Session returns a snapshot of the current state.
func (s *SessionManager) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if s.state.UserID != nil {
		id := *s.state.UserID
		snap.UserID = &id
	}
	return snap
}

// UserID returns the authenticated user's id.
func (s *SessionManager) UserID() (int, bool) {
	return s.Session().Authenticated()
}

func (s *SessionManager) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.state.Busy = true
	s.state.LastError = ""
}

func (s *SessionManager) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.state.Busy = s.inflight > 0
}

// fail returns the session to unauthenticated, in memory and on disk, so a
// failed re-authentication is not undone by the next launch.
func (s *SessionManager) fail(ctx context.Context, msg string) {
	s.mu.Lock()
	s.state.IsAuthenticated = false
	s.state.UserID = nil
	s.state.LastError = msg
	s.mu.Unlock()

	if err := s.metadataRepo().Delete(ctx, metadata.KeyCurrentUserID); err != nil {
		s.log.Error(ctx, "forget user id failed", "error", err)
	}
}

func (s *SessionManager) authenticate(ctx context.Context, id int) {
	s.mu.Lock()
	s.state.IsAuthenticated = true
	s.state.UserID = &id
	s.state.LastError = ""
	s.mu.Unlock()

	if err := metadata.SetInt(ctx, s.metadataRepo(), metadata.KeyCurrentUserID, id); err != nil {
		s.log.Error(ctx, "persist user id failed", "user_id", id, "error", err)
	}
}

// RestoreOnLaunch reads the persisted user id. A stored id is trusted as is;
// nothing is checked against the backend.
func (s *SessionManager) RestoreOnLaunch(ctx context.Context) error {
	id, err := metadata.GetInt(ctx, s.metadataRepo(), metadata.KeyCurrentUserID)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.state.IsAuthenticated = false
		s.state.UserID = nil
		return nil
	}
	s.state.IsAuthenticated = true
	s.state.UserID = id
	s.state.LastError = ""
	s.log.Info(ctx, "session restored", "user_id", *id)
	return nil
}

// Login succeeds when the backend accepts the credentials and its response
// carries a user id.
func (s *SessionManager) Login(ctx context.Context, username, password string) bool {
	s.begin()
	defer s.end()

	res, err := s.client.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		s.metrics.SessionAttempts.WithLabelValues("login", "error").Inc()
		s.fail(ctx, client.HumanMessage(err))
		return false
	}
	if res.StatusCode < 200 || res.StatusCode > 299 || res.UserID == nil {
		s.log.Warn(ctx, "login response without user id", "username", username, "status", res.StatusCode)
		s.metrics.SessionAttempts.WithLabelValues("login", "error").Inc()
		s.fail(ctx, msgLoginFailed)
		return false
	}

	s.authenticate(ctx, *res.UserID)
	s.metrics.SessionAttempts.WithLabelValues("login", "ok").Inc()
	s.log.Info(ctx, "logged in", "user_id", *res.UserID)
	return true
}

// SignUp succeeds only on 201 Created. An id in the response also logs the
// user in; without one the caller is expected to log in next.
func (s *SessionManager) SignUp(ctx context.Context, username, email, password string) bool {
	s.begin()
	defer s.end()

	res, err := s.client.SignUp(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password)
	if err != nil {
		s.log.Warn(ctx, "signup failed", "username", username, "error", err)
		s.metrics.SessionAttempts.WithLabelValues("signup", "error").Inc()
		s.fail(ctx, client.HumanMessage(err))
		return false
	}
	if res.StatusCode != http.StatusCreated {
		s.metrics.SessionAttempts.WithLabelValues("signup", "error").Inc()
		s.fail(ctx, msgSignupFailed)
		return false
	}

	s.metrics.SessionAttempts.WithLabelValues("signup", "ok").Inc()
	if res.UserID != nil {
		s.authenticate(ctx, *res.UserID)
		s.log.Info(ctx, "signed up", "user_id", *res.UserID)
	} else {
		s.log.Info(ctx, "signed up without user id", "username", username)
	}
	return true
}

// CreateOrUpdateProfile submits req and reports whether the backend answered
// with a 2xx status. A returned profile marks the session authenticated.
func (s *SessionManager) CreateOrUpdateProfile(ctx context.Context, req client.CreateProfileRequest) bool {
	s.begin()
	defer s.end()

	res, err := s.client.CreateProfile(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "create profile failed", "user_id", req.UserID, "error", err)
		s.metrics.SessionAttempts.WithLabelValues("profile", "error").Inc()
		s.mu.Lock()
		s.state.LastError = client.HumanMessage(err)
		s.mu.Unlock()
		return false
	}

	if res.Profile != nil {
		s.mu.Lock()
		s.state.IsAuthenticated = true
		s.mu.Unlock()
	}
	ok := res.StatusCode >= 200 && res.StatusCode <= 299
	s.metrics.SessionAttempts.WithLabelValues("profile", outcome(ok)).Inc()
	return ok
}

// Logout forgets the persisted user id and the session user's stored
// conversation threads in one transaction, then resets the in-memory session.
func (s *SessionManager) Logout(ctx context.Context) error {
	owner, hasOwner := s.UserID()
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Delete(ctx, metadata.KeyCurrentUserID); err != nil {
			return err
		}
		if !hasOwner {
			return nil
		}
		return conversations.NewSQLiteRepository(tx).Clear(ctx, owner)
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.mu.Lock()
	s.state = models.Session{Busy: s.inflight > 0}
	s.mu.Unlock()
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *SessionManager) ResolveCourseIDs(ctx context.Context, codes []string) []int {
	return s.resolver.ResolveBatch(ctx, codes)
}

func (s *SessionManager) ResolveMajorID(ctx context.Context, name string) (int, bool) {
	return s.resolver.ResolveOrCreate(ctx, name, ResourceMajor)
}

func (s *SessionManager) ResolveStudyTimeIDs(selected map[models.TimeSlot]bool) []int {
	return s.resolver.ResolveStudyTimes(selected)
}

// BuildProfileRequest resolves everything the create-profile call needs
// from p. Majors and minors that cannot be resolved are skipped.
func (s *SessionManager) BuildProfileRequest(ctx context.Context, p *models.Profile) (client.CreateProfileRequest, error) {
	uid, ok := s.UserID()
	if !ok {
		return client.CreateProfileRequest{}, ErrNotAuthenticated
	}

	req := client.CreateProfileRequest{
		UserID:       uid,
		Name:         strings.TrimSpace(p.Name),
		College:      strings.TrimSpace(p.College),
		MajorIDs:     s.resolveMajors(ctx, p.Majors),
		MinorIDs:     s.resolveMajors(ctx, p.Minors),
		CourseIDs:    s.ResolveCourseIDs(ctx, p.Courses),
		StudyTimeIDs: s.ResolveStudyTimeIDs(p.PreferredTimes),
	}
	if req.StudyTimeIDs == nil {
		req.StudyTimeIDs = []int{}
	}
	for _, loc := range models.LocationKinds {
		if p.PreferredLocations[loc] {
			req.StudyArea = loc.Title()
			break
		}
	}
	return req, nil
}

func (s *SessionManager) resolveMajors(ctx context.Context, names []string) []int {
	ids := make([]int, 0, len(names))
	for _, n := range names {
		if id, ok := s.ResolveMajorID(ctx, n); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
