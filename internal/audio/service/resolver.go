package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

// ErrSourceNotFound means no audio file exists for the requested track in
// either the learner's custom library or the course's system library.
var ErrSourceNotFound = errors.New("service: audio source not found")

// probeExts is the extension search order when a track's container is not
// known up front. mp3 first because that is what the vast majority of the
// catalogue ships as.
var probeExts = []string{".mp3", ".wav", ".ogg", ".flac", ".aac", ".m4a"}

// MediaResolver locates the source file behind a grant. Custom uploads
// shadow system tracks: a learner who re-records a course track hears
// their own version.
type MediaResolver struct {
	// SystemDir holds course-provided audio: <course>/<unit>/<track>.<ext>
	SystemDir string
	// CustomDir holds learner uploads: <user>/<course>/<unit>/<track>.<ext>
	CustomDir string
}

// sanitize rejects path components that could escape the media roots.
func sanitize(part string) (string, error) {
	if part == "" || part == "." || part == ".." ||
		strings.ContainsAny(part, `/\`) || strings.Contains(part, "..") {
		return "", fmt.Errorf("service: invalid path component %q", part)
	}
	return part, nil
}

func probe(base string) (string, bool) {
	for _, ext := range probeExts {
		candidate := base + ext
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Resolve returns the absolute source path for the track named by g,
// preferring the learner's custom upload over the system file.
func (r *MediaResolver) Resolve(g domain.Grant) (string, error) {
	parts := make([]string, 0, 4)
	for _, p := range []string{g.SubjectID, g.CourseID, g.UnitID, g.TrackID} {
		clean, err := sanitize(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, clean)
	}
	user, course, unit, track := parts[0], parts[1], parts[2], parts[3]

	if path, ok := probe(filepath.Join(r.CustomDir, user, course, unit, track)); ok {
		return path, nil
	}
	if path, ok := probe(filepath.Join(r.SystemDir, course, unit, track)); ok {
		return path, nil
	}
	return "", ErrSourceNotFound
}

// CustomPath returns where a learner's upload for the given track should be
// written, using the supplied container extension.
func (r *MediaResolver) CustomPath(userID, courseID, unitID, trackID, ext string) (string, error) {
	for _, p := range []string{userID, courseID, unitID, trackID} {
		if _, err := sanitize(p); err != nil {
			return "", err
		}
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if !domain.SupportedFormat(ext) && ext != "wav" && ext != "flac" && ext != "m4a" {
		return "", fmt.Errorf("service: unsupported upload container %q", ext)
	}
	return filepath.Join(r.CustomDir, userID, courseID, unitID, trackID+"."+ext), nil
}
