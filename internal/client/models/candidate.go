package models

import "time"

// CandidateUser is a read-only projection of another user's profile shown
// as a swipe card. UserID must be positive to be swiped on.
type CandidateUser struct {
	UserID             int
	Name               string
	PrimaryMajor       string
	Courses            []string
	PreferredTimes     []TimeSlot
	PreferredLocations []LocationKind
}

type SwipeStatus string

const (
	SwipeLike    SwipeStatus = "LIKE"
	SwipeDislike SwipeStatus = "DISLIKE"
)

// SwipeDecision is what gets recorded remotely; it is not persisted locally.
type SwipeDecision struct {
	SwiperID int         `json:"swiper_id"`
	TargetID int         `json:"target_id"`
	Status   SwipeStatus `json:"status"`
}

// MatchResult is the backend's verdict on a LIKE.
type MatchResult struct {
	Matched bool
	MatchID *int
}

// ConversationThread records that a match with UserID happened.
type ConversationThread struct {
	UserID       int
	Name         string
	PrimaryMajor string
	Courses      []string
	MatchedAt    time.Time
}
