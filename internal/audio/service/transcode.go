package service

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/pkg/idx"
	"github.com/linguastream/linguastream/pkg/slogx"
)

// Encoder turns a source audio file into dst at the given profile.
type Encoder interface {
	Encode(ctx context.Context, src, dst string, profile domain.QualityProfile) error
}

// FFmpegEncoder shells out to ffmpeg for the actual transcoding work.
type FFmpegEncoder struct {
	// Binary is the ffmpeg executable path. Defaults to "ffmpeg" on PATH.
	Binary string
}

func codecForExt(ext string) string {
	switch ext {
	case "mp3":
		return "libmp3lame"
	case "ogg":
		return "libvorbis"
	case "aac":
		return "aac"
	default:
		return "libmp3lame"
	}
}

func (e *FFmpegEncoder) Encode(ctx context.Context, src, dst string, profile domain.QualityProfile) error {
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	args := []string{
		"-y",
		"-i", src,
		"-vn",
		"-c:a", codecForExt(profile.ContainerExt),
		"-b:a", strconv.Itoa(profile.BitrateKbps) + "k",
		"-ar", strconv.Itoa(profile.SampleRateHz),
		"-ac", strconv.Itoa(profile.Channels),
		dst,
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.Bytes()))
	}
	return nil
}

// lastLine trims ffmpeg's chatty stderr down to the line that usually
// carries the actual error.
func lastLine(out []byte) string {
	out = bytes.TrimSpace(out)
	if i := bytes.LastIndexByte(out, '\n'); i >= 0 {
		out = out[i+1:]
	}
	if len(out) > 300 {
		out = out[:300]
	}
	return string(out)
}

// CopyEncoder passes the source through unchanged. Used when no ffmpeg is
// available, so streaming still works at the source's native quality.
type CopyEncoder struct{}

func (CopyEncoder) Encode(_ context.Context, src, dst string, _ domain.QualityProfile) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// TranscodeCache materializes quality-specific renditions on disk and
// reuses them across requests. Rendition names fold in the source file's
// size and mtime, so replacing a source file naturally invalidates its
// old renditions.
type TranscodeCache struct {
	root string
	enc  Encoder

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// NewTranscodeCache roots the cache at dir and uses enc for cache misses.
func NewTranscodeCache(dir string, enc Encoder) *TranscodeCache {
	return &TranscodeCache{
		root:     dir,
		enc:      enc,
		inflight: make(map[string]*sync.Mutex),
	}
}

// sourceSignature derives a short stable token from the source file's
// size and modification time.
func sourceSignature(fi os.FileInfo) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d", fi.Size(), fi.ModTime().UnixNano())
	return strconv.FormatUint(h.Sum64(), 36)
}

// Path returns the rendition path for src at profile without building it.
func (c *TranscodeCache) Path(src, trackID string, profile domain.QualityProfile) (string, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	name := fmt.Sprintf("%s_%d_%d_%d_%s.%s",
		trackID, profile.BitrateKbps, profile.SampleRateHz, profile.Channels,
		sourceSignature(fi), profile.ContainerExt)
	return filepath.Join(c.root, profile.Name, name), nil
}

// GetOrBuild returns the on-disk path of the rendition for src at profile,
// transcoding it first if no current rendition exists. Concurrent requests
// for the same rendition serialize on a per-key lock so the encoder runs
// once. The rendition is written to a temp file and renamed into place, so
// readers never observe a partial file.
func (c *TranscodeCache) GetOrBuild(ctx context.Context, src, trackID string, profile domain.QualityProfile) (string, error) {
	dst, err := c.Path(src, trackID, profile)
	if err != nil {
		return "", err
	}

	lock := c.keyLock(dst)
	lock.Lock()
	defer func() {
		lock.Unlock()
		c.releaseKey(dst)
	}()

	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create rendition dir: %w", err)
	}

	tmp := dst + ".tmp-" + idx.New().String()
	slogx.FromContext(ctx).Debug("transcoding rendition",
		slog.String("track_id", trackID),
		slog.String("profile", profile.Name),
	)

	if err := c.enc.Encode(ctx, src, tmp, profile); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("encode rendition: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish rendition: %w", err)
	}
	return dst, nil
}

func (c *TranscodeCache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.inflight[key]
	if !ok {
		m = &sync.Mutex{}
		c.inflight[key] = m
	}
	return m
}

func (c *TranscodeCache) releaseKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.inflight[key]; ok && m.TryLock() {
		m.Unlock()
		delete(c.inflight, key)
	}
}
