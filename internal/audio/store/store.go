package store

import (
	"context"
	"errors"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories are exposed as methods to keep
// concerns tidy and testable.
type Store interface {
	Tracks() Tracks
	CourseAccess() CourseAccess
	Progress() Progress

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tracks interface {
	// GetTrackByID returns a track by id.
	GetTrackByID(ctx context.Context, id string) (domain.Track, error)

	// ListUnitTracks returns the tracks of a unit visible to userID:
	// the course's system tracks plus that user's custom tracks, ordered
	// by sort_order then created_at.
	ListUnitTracks(ctx context.Context, courseID, unitID, userID string) ([]domain.Track, error)

	// CreateTrack inserts a new track (id is provided by app via ULID).
	CreateTrack(ctx context.Context, t domain.Track) error

	// UpdateTrackMeta mutates title/description and bumps updated_at.
	UpdateTrackMeta(ctx context.Context, trackID, title, description string) error

	// UpdateTrackSource records the stored file's size and duration after
	// an upload replaces the audio.
	UpdateTrackSource(ctx context.Context, trackID string, fileSize int64, duration float64) error

	// SetSortOrder moves a track to the given position.
	SetSortOrder(ctx context.Context, trackID string, sortOrder int) error

	// DeleteTrack removes the catalogue row. Progress rows cascade.
	DeleteTrack(ctx context.Context, trackID string) error
}

type CourseAccess interface {
	// HasAccess reports whether userID is enrolled in courseID.
	HasAccess(ctx context.Context, userID, courseID string) (bool, error)

	// GrantAccess enrolls a user. Idempotent.
	GrantAccess(ctx context.Context, userID, courseID string) error

	// RevokeAccess removes an enrollment.
	RevokeAccess(ctx context.Context, userID, courseID string) error
}

type Progress interface {
	// GetProgress returns the user's listening position for a track.
	GetProgress(ctx context.Context, userID, trackID string) (domain.Progress, error)

	// UpsertProgress writes position/completion and bumps play_count when
	// bumpPlay is set.
	UpsertProgress(ctx context.Context, p domain.Progress, bumpPlay bool) error

	// ListCourseProgress returns all of the user's progress rows for
	// tracks in a course.
	ListCourseProgress(ctx context.Context, userID, courseID string) ([]domain.Progress, error)
}
