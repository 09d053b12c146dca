package domain

import "time"

// Track is one catalogue entry. System tracks ship with a course; custom
// tracks are uploaded by a learner and visible only to them.
type Track struct {
	ID          string
	CourseID    string
	UnitID      string
	OwnerID     string // empty for system tracks
	Title       string
	Description string
	Format      string // container extension without dot, e.g. "mp3"
	FileSize    int64
	Duration    float64 // seconds, estimated at upload
	SortOrder   int
	Custom      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Progress records where a listener last left off in a track.
type Progress struct {
	UserID         string
	TrackID        string
	LastPosition   float64 // seconds
	CompletionRate float64 // 0..100
	PlayCount      int
	LastAccessed   time.Time
}
