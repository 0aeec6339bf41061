package storage

import (
	"context"

	"driverprofilebot/pkg/survey"
)

// ProfileStore is the persistence contract for driver profiles, keyed by
// user id. Implementations own their connection setup and are not assumed
// transactional across calls.
type ProfileStore interface {
	// Get returns the stored profile, or nil when the user has none.
	Get(ctx context.Context, userID int64) (*survey.Profile, error)
	// CreateOrReplace writes the whole document, overwriting any previous one.
	CreateOrReplace(ctx context.Context, p *survey.Profile) error
	// Update merges the given fields into the stored document. The identity
	// fields user_id and username are never taken from the payload. Returns
	// false when no document exists.
	Update(ctx context.Context, userID int64, fields map[string]any) (bool, error)
	// Delete removes the document, reporting whether one existed.
	Delete(ctx context.Context, userID int64) (bool, error)
}
