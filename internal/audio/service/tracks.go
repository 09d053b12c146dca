package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/store"
	"github.com/linguastream/linguastream/pkg/idx"
	"github.com/linguastream/linguastream/pkg/slogx"
)

var (
	ErrTrackNotFound  = errors.New("track not found")
	ErrAccessDenied   = errors.New("not enrolled in course")
	ErrNotTrackOwner  = errors.New("track belongs to another user")
	ErrNotCustomTrack = errors.New("system tracks cannot be modified")
	ErrEmptyUpload    = errors.New("upload contains no audio data")
)

// maxUploadBytes caps custom recordings at 100 MiB.
const maxUploadBytes = 100 << 20

type TrackService struct {
	Store    store.Store
	Resolver *MediaResolver
}

// Authorize checks that userID may perform action on trackID and returns
// the track. This is the gate the token issuance endpoint runs before
// sealing a grant.
func (s *TrackService) Authorize(ctx context.Context, userID, trackID string, action domain.Action) (domain.Track, error) {
	log := slogx.FromContext(ctx)

	track, err := s.Store.Tracks().GetTrackByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Track{}, ErrTrackNotFound
		}
		log.Error("failed to fetch track", slog.Any("error", err))
		return domain.Track{}, err
	}

	ok, err := s.Store.CourseAccess().HasAccess(ctx, userID, track.CourseID)
	if err != nil {
		log.Error("failed to check course access", slog.Any("error", err))
		return domain.Track{}, err
	}
	if !ok {
		log.Warn("course access denied",
			slog.String("user_id", userID),
			slog.String("course_id", track.CourseID),
		)
		return domain.Track{}, ErrAccessDenied
	}

	// Mutating actions are restricted to the learner's own uploads.
	switch action {
	case domain.ActionUpdateTrack, domain.ActionReorderTrack, domain.ActionDeleteTrack:
		if !track.Custom {
			return domain.Track{}, ErrNotCustomTrack
		}
		if track.OwnerID != userID {
			return domain.Track{}, ErrNotTrackOwner
		}
	}

	return track, nil
}

// GetTrack returns a track's metadata after the enrollment check.
func (s *TrackService) GetTrack(ctx context.Context, userID, trackID string) (domain.Track, error) {
	return s.Authorize(ctx, userID, trackID, domain.ActionGetMetadata)
}

// ListUnitTracks returns the tracks a learner sees for a unit: the system
// tracks plus their own uploads.
func (s *TrackService) ListUnitTracks(ctx context.Context, userID, courseID, unitID string) ([]domain.Track, error) {
	ok, err := s.Store.CourseAccess().HasAccess(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return s.Store.Tracks().ListUnitTracks(ctx, courseID, unitID, userID)
}

// UpdateTrackMeta renames or re-describes a learner's custom track.
func (s *TrackService) UpdateTrackMeta(ctx context.Context, userID, trackID, title, description string) (domain.Track, error) {
	if _, err := s.Authorize(ctx, userID, trackID, domain.ActionUpdateTrack); err != nil {
		return domain.Track{}, err
	}
	if err := s.Store.Tracks().UpdateTrackMeta(ctx, trackID, title, description); err != nil {
		return domain.Track{}, err
	}
	return s.Store.Tracks().GetTrackByID(ctx, trackID)
}

// ReorderTrack moves a custom track to a new position within its unit.
func (s *TrackService) ReorderTrack(ctx context.Context, userID, trackID string, sortOrder int) error {
	if _, err := s.Authorize(ctx, userID, trackID, domain.ActionReorderTrack); err != nil {
		return err
	}
	return s.Store.Tracks().SetSortOrder(ctx, trackID, sortOrder)
}

// DeleteTrack removes a custom track's catalogue row and its audio file.
func (s *TrackService) DeleteTrack(ctx context.Context, userID, trackID string) error {
	log := slogx.FromContext(ctx)

	track, err := s.Authorize(ctx, userID, trackID, domain.ActionDeleteTrack)
	if err != nil {
		return err
	}

	if err := s.Store.Tracks().DeleteTrack(ctx, trackID); err != nil {
		return err
	}

	// Best effort: a stale file is invisible once the row is gone.
	path, err := s.Resolver.CustomPath(userID, track.CourseID, track.UnitID, track.ID, track.Format)
	if err == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove audio file",
				slog.String("track_id", trackID),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// UploadCustomTrack stores a learner's recording and registers it in the
// catalogue. The file lands via temp-and-rename so a dropped connection
// never leaves a half-written track behind.
func (s *TrackService) UploadCustomTrack(
	ctx context.Context,
	userID, courseID, unitID, title, ext string,
	audio io.Reader,
) (domain.Track, error) {
	log := slogx.FromContext(ctx)

	// 1. Enrollment gate.
	ok, err := s.Store.CourseAccess().HasAccess(ctx, userID, courseID)
	if err != nil {
		return domain.Track{}, err
	}
	if !ok {
		return domain.Track{}, ErrAccessDenied
	}

	// 2. Decide the track identity and target path up front.
	trackID := idx.New().String()
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	path, err := s.Resolver.CustomPath(userID, courseID, unitID, trackID, ext)
	if err != nil {
		return domain.Track{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Track{}, err
	}

	// 3. Spool the upload to a temp file next to the target.
	tmp := path + ".tmp-" + idx.New().String()
	f, err := os.Create(tmp)
	if err != nil {
		return domain.Track{}, err
	}
	written, err := io.Copy(f, io.LimitReader(audio, maxUploadBytes))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return domain.Track{}, err
	}
	if written == 0 {
		os.Remove(tmp)
		return domain.Track{}, ErrEmptyUpload
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return domain.Track{}, err
	}

	// 4. Register the catalogue row.
	now := time.Now().UTC()
	track := domain.Track{
		ID:        trackID,
		CourseID:  courseID,
		UnitID:    unitID,
		OwnerID:   userID,
		Title:     title,
		Format:    ext,
		FileSize:  written,
		Duration:  estimateDuration(written, ext),
		Custom:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tracks().CreateTrack(ctx, track); err != nil {
		os.Remove(path)
		return domain.Track{}, err
	}

	log.Info("custom track uploaded",
		slog.String("track_id", trackID),
		slog.String("user_id", userID),
		slog.Int64("bytes", written),
	)
	return track, nil
}

// estimateDuration guesses a track length from its size assuming a typical
// bitrate for the container. Good enough for progress percentages until a
// proper probe replaces it.
func estimateDuration(size int64, ext string) float64 {
	kbps := 192
	switch ext {
	case "wav":
		kbps = 1411
	case "flac":
		kbps = 900
	case "ogg", "aac", "m4a":
		kbps = 160
	}
	return float64(size*8) / float64(kbps*1000)
}

// GetProgress returns where the learner last left off in a track.
func (s *TrackService) GetProgress(ctx context.Context, userID, trackID string) (domain.Progress, error) {
	p, err := s.Store.Progress().GetProgress(ctx, userID, trackID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Progress{UserID: userID, TrackID: trackID}, nil
	}
	return p, err
}

// SaveProgress records a playback position. A position at or past 99% of
// the track counts as a completed listen and bumps the play count.
func (s *TrackService) SaveProgress(ctx context.Context, userID, trackID string, position float64) error {
	track, err := s.Store.Tracks().GetTrackByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTrackNotFound
		}
		return err
	}

	rate := 0.0
	if track.Duration > 0 {
		rate = position / track.Duration * 100
		if rate > 100 {
			rate = 100
		}
	}

	return s.Store.Progress().UpsertProgress(ctx, domain.Progress{
		UserID:         userID,
		TrackID:        trackID,
		LastPosition:   position,
		CompletionRate: rate,
	}, rate >= 99)
}

// ListCourseProgress returns the learner's progress across a course.
func (s *TrackService) ListCourseProgress(ctx context.Context, userID, courseID string) ([]domain.Progress, error) {
	ok, err := s.Store.CourseAccess().HasAccess(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return s.Store.Progress().ListCourseProgress(ctx, userID, courseID)
}
