package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
)

// Client is the backend contract consumed by the services.
type Client interface {
	Close() error

	Login(ctx context.Context, username, password string) (*AuthResult, error)
	SignUp(ctx context.Context, username, email, password string) (*AuthResult, error)
	CreateProfile(ctx context.Context, req CreateProfileRequest) (*CreateProfileResult, error)

	CreateCourse(ctx context.Context, code string) (*int, error)
	ListCourses(ctx context.Context) ([]Course, error)
	CreateMajor(ctx context.Context, name string) (*int, error)
	ListMajors(ctx context.Context) ([]Major, error)

	ListProfiles(ctx context.Context) ([]RichProfile, error)
	RecordSwipe(ctx context.Context, d models.SwipeDecision) (*models.MatchResult, error)
}

// AuthResult is a login or signup response the transport accepted.
// UserID is nil when neither response shape carried an id.
type AuthResult struct {
	StatusCode int
	UserID     *int
}

type CreateProfileRequest struct {
	UserID       int    `json:"user_id"`
	Name         string `json:"name,omitempty"`
	College      string `json:"college,omitempty"`
	MajorIDs     []int  `json:"major_ids"`
	MinorIDs     []int  `json:"minor_ids"`
	CourseIDs    []int  `json:"course_ids"`
	StudyTimeIDs []int  `json:"study_time_ids"`
	StudyArea    string `json:"study_area,omitempty"`
}

// CreateProfileResult carries the raw "profile" payload, if any.
type CreateProfileResult struct {
	StatusCode int
	Profile    json.RawMessage
}

type Course struct {
	ID   int     `json:"id"`
	Code *string `json:"code"`
}

type Major struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
}

type NamedRef struct {
	Name *string `json:"name"`
}

type CourseRef struct {
	Code *string `json:"code"`
}

// RichProfile is one entry of the profile listing.
type RichProfile struct {
	ID         *int        `json:"id"`
	UserID     *int        `json:"user_id"`
	Name       *string     `json:"name"`
	Majors     []NamedRef  `json:"majors"`
	Courses    []CourseRef `json:"courses"`
	StudyTimes []NamedRef  `json:"study_times"`
	StudyArea  *NamedRef   `json:"study_area"`
}
