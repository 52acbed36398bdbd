package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/studybuddy/internal/client/client"
	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// ---- fake client ----

type swipeCall = models.SwipeDecision

// fakeClient implements client.Client for service tests. It is safe for
// concurrent use because dislikes are recorded from a goroutine.
type fakeClient struct {
	mu sync.Mutex

	LoginRet *client.AuthResult
	LoginErr error

	SignUpRet *client.AuthResult
	SignUpErr error

	CreateProfileRet *client.CreateProfileResult
	CreateProfileErr error

	// per-code/name results; a missing key means (nil, CreateErr)
	CourseIDs  map[string]int
	MajorIDs   map[string]int
	CreateErr  error
	Courses    []client.Course
	Majors     []client.Major
	ListErr    error
	Profiles   []client.RichProfile
	ProfileErr error

	// SwipeFn, when set, decides the swipe response.
	SwipeFn func(swipeCall) (*models.MatchResult, error)

	LastLoginUser    string
	LastSignUpEmail  string
	LastProfile      client.CreateProfileRequest
	CreatedCourses   []string
	CreatedMajors    []string
	ListCoursesCalls int
	ListMajorsCalls  int
	ListProfileCalls int
	Swipes           []swipeCall
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLoginUser = username
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) SignUp(ctx context.Context, username, email, password string) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSignUpEmail = email
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeClient) CreateProfile(ctx context.Context, req client.CreateProfileRequest) (*client.CreateProfileResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProfile = req
	return f.CreateProfileRet, f.CreateProfileErr
}

func (f *fakeClient) CreateCourse(ctx context.Context, code string) (*int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedCourses = append(f.CreatedCourses, code)
	if id, ok := f.CourseIDs[code]; ok {
		return &id, nil
	}
	return nil, f.CreateErr
}

func (f *fakeClient) ListCourses(ctx context.Context) ([]client.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCoursesCalls++
	return f.Courses, f.ListErr
}

func (f *fakeClient) CreateMajor(ctx context.Context, name string) (*int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedMajors = append(f.CreatedMajors, name)
	if id, ok := f.MajorIDs[name]; ok {
		return &id, nil
	}
	return nil, f.CreateErr
}

func (f *fakeClient) ListMajors(ctx context.Context) ([]client.Major, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListMajorsCalls++
	return f.Majors, f.ListErr
}

func (f *fakeClient) ListProfiles(ctx context.Context) ([]client.RichProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListProfileCalls++
	return f.Profiles, f.ProfileErr
}

func (f *fakeClient) RecordSwipe(ctx context.Context, call models.SwipeDecision) (*models.MatchResult, error) {
	f.mu.Lock()
	f.Swipes = append(f.Swipes, call)
	fn := f.SwipeFn
	f.mu.Unlock()

	if fn != nil {
		return fn(call)
	}
	return &models.MatchResult{}, nil
}

func (f *fakeClient) swipes() []swipeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]swipeCall(nil), f.Swipes...)
}

// fixedSession is a UserIDSource with a settable id.
type fixedSession struct {
	id *int
}

func (s fixedSession) UserID() (int, bool) {
	if s.id == nil {
		return 0, false
	}
	return *s.id, true
}
