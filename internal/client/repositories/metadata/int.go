package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// GetInt reads key as a decimal integer. A missing key or a value that is
// not an integer both yield (nil, nil); only storage failures are errors.
func GetInt(ctx context.Context, r Repository, key string) (*int, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil
	}
	return &v, nil
}

func SetInt(ctx context.Context, r Repository, key string, v int) error {
	if err := r.Set(ctx, key, strconv.Itoa(v)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
