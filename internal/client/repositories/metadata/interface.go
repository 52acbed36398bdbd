package metadata

import (
	"context"
)

// KeyCurrentUserID holds the authenticated user's id between launches.
const KeyCurrentUserID = "SB.currentUserId"

// Repository is a small string key/value store for client state that must
// outlive a launch.
type Repository interface {
	// Get reports ok=false for a missing key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}
