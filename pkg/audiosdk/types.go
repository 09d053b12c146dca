package audiosdk

// TokenRequest asks for a sealed access token scoped to one action on one
// track.
type TokenRequest struct {
	Action string `json:"action"`
}

// TokenResponse carries a freshly sealed access token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // unix seconds
	Action    string `json:"action"`
	TrackID   string `json:"trackId"`
}

// TrackResponse is the catalogue view of a single track.
type TrackResponse struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"courseId"`
	UnitID      string  `json:"unitId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Format      string  `json:"format"`
	FileSize    int64   `json:"fileSize"`
	Duration    float64 `json:"duration"`
	SortOrder   int     `json:"sortOrder"`
	Custom      bool    `json:"custom"`
}

// TrackListResponse wraps a unit's track listing.
type TrackListResponse struct {
	Tracks []TrackResponse `json:"tracks"`
}

// UpdateTrackRequest renames or re-describes a custom track.
type UpdateTrackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ReorderTrackRequest moves a custom track within its unit.
type ReorderTrackRequest struct {
	SortOrder int `json:"sortOrder"`
}

// ProgressRequest records a playback position.
type ProgressRequest struct {
	Position float64 `json:"position"` // seconds
}

// ProgressResponse is the stored listening state for one track.
type ProgressResponse struct {
	TrackID        string  `json:"trackId"`
	LastPosition   float64 `json:"lastPosition"`
	CompletionRate float64 `json:"completionRate"`
	PlayCount      int     `json:"playCount"`
}

// ProgressListResponse wraps a course's progress rows.
type ProgressListResponse struct {
	Progress []ProgressResponse `json:"progress"`
}

// StreamInfo describes the rendition chosen for an adaptive stream. It is
// surfaced to clients through the X-Audio-Quality, X-Audio-Bitrate and
// X-Audio-Format response headers rather than a JSON body.
type StreamInfo struct {
	Quality     string `json:"quality"`
	BitrateKbps int    `json:"bitrateKbps"`
	Format      string `json:"format"`
}

// HealthChecks reports per-dependency health in readiness probes.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Media    string `json:"media,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
