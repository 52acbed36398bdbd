// Package models defines client-side data models used by the StudyBuddy CLI:
// the session, the user's own profile and calendar, candidate projections
// of other users, swipe decisions and conversation threads.
package models

// Session is a snapshot of the authentication state.
//
// IsAuthenticated mirrors UserID != nil after login, signup, restore and
// logout. Profile creation may set IsAuthenticated without an id.
type Session struct {
	IsAuthenticated bool
	UserID          *int
	// LastError is the human-readable message of the last failed operation.
	LastError string
	// Busy is true while a login, signup or profile request is in flight.
	Busy bool
}

// Authenticated reports whether the session carries a usable user id.
func (s Session) Authenticated() (int, bool) {
	if !s.IsAuthenticated || s.UserID == nil {
		return 0, false
	}
	return *s.UserID, true
}
