package domain

import "time"

// Action enumerates the operations an access grant can authorize. A grant
// is scoped to exactly one action; consumers check the action against the
// operation being performed, the codec does not.
type Action string

const (
	ActionStreamAudio  Action = "stream_audio"
	ActionGetMetadata  Action = "get_metadata"
	ActionUpdateTrack  Action = "update_track"
	ActionReorderTrack Action = "reorder_track"
	ActionDeleteTrack  Action = "delete_track"
	ActionGetTracks    Action = "get_tracks"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionStreamAudio, ActionGetMetadata, ActionUpdateTrack,
		ActionReorderTrack, ActionDeleteTrack, ActionGetTracks:
		return true
	}
	return false
}

// Grant is a time-boxed capability authorizing one action on one track for
// one listener. Grants travel encrypted; they are never persisted.
//
// The JSON tags are deliberately short: the serialized grant is sealed and
// base64url-encoded into a query parameter, so every byte counts.
type Grant struct {
	SubjectID string `json:"sub"`
	CourseID  string `json:"cid"`
	UnitID    string `json:"uid"`
	TrackID   string `json:"tid"`
	Action    Action `json:"act"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"non"`
}

// Expired reports whether the grant's lifetime has passed at time now.
func (g Grant) Expired(now time.Time) bool {
	return now.Unix() > g.ExpiresAt
}
