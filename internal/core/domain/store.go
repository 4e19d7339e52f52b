package domain

import (
	"context"
	"errors"
)

var (
	// ErrStateNotFound means the backing store holds no usable aggregate:
	// either the key is missing or the stored document is malformed.
	// Callers fall back to seed defaults; load failures never propagate
	// past this boundary as anything more specific.
	ErrStateNotFound = errors.New("tracker state not found")
)

// TrackerStore persists the whole aggregate as a single JSON document under
// one configured key. Writes replace the document wholesale; there are no
// incremental updates.
type TrackerStore interface {
	Load(ctx context.Context) (*TrackerState, error)
	Save(ctx context.Context, state *TrackerState) error
}
