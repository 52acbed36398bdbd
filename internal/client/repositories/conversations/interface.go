package conversations

import (
	"context"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
)

// Repository stores conversation threads per owner, the logged-in user who
// made the match, keyed by the matched user's id.
type Repository interface {
	// Insert adds the thread unless the owner already has one for the same
	// user id. It reports whether a row was written.
	Insert(ctx context.Context, ownerID int, thread models.ConversationThread) (bool, error)

	// List returns the owner's threads in insertion order.
	List(ctx context.Context, ownerID int) ([]models.ConversationThread, error)

	// Clear removes the owner's threads.
	Clear(ctx context.Context, ownerID int) error
}
