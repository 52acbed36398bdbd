package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/client/repositories/conversations"
	"github.com/dmitrijs2005/studybuddy/internal/logging"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	conversations.Repository
	inserts int
}

func (r *failingRepo) Insert(ctx context.Context, ownerID int, t models.ConversationThread) (bool, error) {
	r.inserts++
	return false, errors.New("disk full")
}

func TestAddMatch_Idempotent(t *testing.T) {
	s := NewConversationStore(nil, nil, logging.Discard())
	u := models.CandidateUser{UserID: 7, Name: "Kim", Courses: []string{"CS101"}}

	require.True(t, s.AddMatch(context.Background(), u))
	require.Len(t, s.List(), 1)

	require.False(t, s.AddMatch(context.Background(), u))
	require.Len(t, s.List(), 1)
	require.True(t, s.Contains(7))
}

func TestAddMatch_InsertionOrder(t *testing.T) {
	s := NewConversationStore(nil, nil, logging.Discard())
	for _, id := range []int{3, 1, 2} {
		s.AddMatch(context.Background(), models.CandidateUser{UserID: id})
	}

	var ids []int
	for _, th := range s.List() {
		ids = append(ids, th.UserID)
	}
	require.Equal(t, []int{3, 1, 2}, ids)
}

func TestAddMatch_WritesThroughAndLoads(t *testing.T) {
	db := setupDB(t)
	repo := conversations.NewSQLiteRepository(db)
	ctx := context.Background()

	s := NewConversationStore(repo, nil, logging.Discard())
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	require.True(t, s.AddMatch(ctx, models.CandidateUser{UserID: 7, Name: "Kim", PrimaryMajor: "CS", Courses: []string{"CS101"}}))
	require.True(t, s.AddMatch(ctx, models.CandidateUser{UserID: 4, Name: "Lee"}))

	restored := NewConversationStore(repo, nil, logging.Discard())
	require.NoError(t, restored.Load(ctx))

	got := restored.List()
	require.Len(t, got, 2)
	require.Equal(t, 7, got[0].UserID)
	require.Equal(t, []string{"CS101"}, got[0].Courses)
	require.True(t, got[0].MatchedAt.Equal(fixed))
	require.Equal(t, 4, got[1].UserID)

	// already persisted: in-memory dedup after load
	require.False(t, restored.AddMatch(ctx, models.CandidateUser{UserID: 7}))
}

func TestAddMatch_PersistenceFailureKeepsInMemoryAdd(t *testing.T) {
	repo := &failingRepo{}
	s := NewConversationStore(repo, nil, logging.Discard())

	require.True(t, s.AddMatch(context.Background(), models.CandidateUser{UserID: 1}))
	require.Equal(t, 1, repo.inserts)
	require.Len(t, s.List(), 1)
}

func TestConversationStore_ListIsACopy(t *testing.T) {
	s := NewConversationStore(nil, nil, logging.Discard())
	s.AddMatch(context.Background(), models.CandidateUser{UserID: 1, Name: "A"})

	l := s.List()
	l[0].Name = "changed"
	require.Equal(t, "A", s.List()[0].Name)
}

func TestConversationStore_Reset(t *testing.T) {
	s := NewConversationStore(nil, nil, logging.Discard())
	s.AddMatch(context.Background(), models.CandidateUser{UserID: 1})
	s.Reset()

	require.Empty(t, s.List())
	require.True(t, s.AddMatch(context.Background(), models.CandidateUser{UserID: 1}))
}

func TestConversationStore_LoadWithoutRepo(t *testing.T) {
	s := NewConversationStore(nil, nil, logging.Discard())
	require.NoError(t, s.Load(context.Background()))
}

func TestConversationStore_ThreadsFollowSessionUser(t *testing.T) {
	db := setupDB(t)
	repo := conversations.NewSQLiteRepository(db)
	ctx := context.Background()

	me := 1
	s := NewConversationStore(repo, fixedSession{id: &me}, logging.Discard())
	require.NoError(t, s.Load(ctx))

	carol := models.CandidateUser{UserID: 7, Name: "Carol"}
	require.True(t, s.AddMatch(ctx, carol))
	require.True(t, s.Contains(7))

	// another user logs in without logging out first
	me = 2
	require.Empty(t, s.List())
	require.False(t, s.Contains(7))

	require.NoError(t, s.Load(ctx))
	require.Empty(t, s.List())

	require.True(t, s.AddMatch(ctx, carol), "a match of user 1 must not hide the same match for user 2")
	require.Len(t, s.List(), 1)

	// a fresh store of user 1 still sees only its own thread
	me = 1
	restored := NewConversationStore(repo, fixedSession{id: &me}, logging.Discard())
	require.NoError(t, restored.Load(ctx))
	got := restored.List()
	require.Len(t, got, 1)
	require.Equal(t, 7, got[0].UserID)

	persisted, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
}

func TestConversationStore_SwitchWithoutLoadReloads(t *testing.T) {
	db := setupDB(t)
	repo := conversations.NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, 2, models.ConversationThread{UserID: 4, Name: "Lee", MatchedAt: time.Now()})
	require.NoError(t, err)

	me := 1
	s := NewConversationStore(repo, fixedSession{id: &me}, logging.Discard())
	require.NoError(t, s.Load(ctx))
	require.True(t, s.AddMatch(ctx, models.CandidateUser{UserID: 7}))

	me = 2
	require.False(t, s.AddMatch(ctx, models.CandidateUser{UserID: 4}), "user 2 already matched 4")
	require.True(t, s.AddMatch(ctx, models.CandidateUser{UserID: 7}))

	var ids []int
	for _, th := range s.List() {
		ids = append(ids, th.UserID)
	}
	require.Equal(t, []int{4, 7}, ids)
}

func TestConversationStore_NoSessionUser(t *testing.T) {
	s := NewConversationStore(nil, fixedSession{}, logging.Discard())

	require.NoError(t, s.Load(context.Background()))
	require.False(t, s.AddMatch(context.Background(), models.CandidateUser{UserID: 1}))
	require.Empty(t, s.List())
}
