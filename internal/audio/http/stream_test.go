package http

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
)

func TestStream_FullTrack(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	assert.Equal(t, "5000", rec.Header().Get("Content-Length"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
	assert.Len(t, rec.Body.Bytes(), 5000)
}

func TestStream_ByteRange(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil,
		func(r *http.Request) { r.Header.Set("Range", "bytes=0-1023") })

	require.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "bytes 0-1023/5000", rec.Header().Get("Content-Range"))
	assert.Equal(t, "1024", rec.Header().Get("Content-Length"))
	assert.Len(t, rec.Body.Bytes(), 1024)
}

func TestStream_SuffixRange(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil,
		func(r *http.Request) { r.Header.Set("Range", "bytes=-50") })

	require.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "bytes 4950-4999/5000", rec.Header().Get("Content-Range"))
	assert.Len(t, rec.Body.Bytes(), 50)
}

// Malformed, unsatisfiable and multi-range requests all answer 416 with
// Content-Range: bytes */<size>.
func TestStream_BadRangesAnswer416(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	for name, header := range map[string]string{
		"out of bounds": "bytes=9999-",
		"malformed":     "bytes=abc-def",
		"multi-range":   "bytes=0-99,200-299",
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil,
				func(r *http.Request) { r.Header.Set("Range", header) })

			require.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Code)
			assert.Equal(t, "bytes */5000", rec.Header().Get("Content-Range"))
		})
	}
}

func TestStream_TokenChecks(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	other := env.seedSystemTrack(t, "c1", "n1", 3000)
	env.enroll(t, "u1", "c1")

	t.Run("missing token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong action", func(t *testing.T) {
		opaque := env.mintToken(t, "u1", track, domain.ActionGetMetadata)
		rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for another track", func(t *testing.T) {
		opaque := env.mintToken(t, "u1", other, domain.ActionStreamAudio)
		rec := env.do(t, http.MethodGet, "/v1/audio/stream/"+track.ID+"?token="+opaque, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)
		raw, err := base64.RawURLEncoding.DecodeString(opaque)
		require.NoError(t, err)
		raw[len(raw)/2] ^= 0x01
		rec := env.do(t, http.MethodGet,
			"/v1/audio/stream/"+track.ID+"?token="+base64.RawURLEncoding.EncodeToString(raw), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdaptive_QualityAdaptsToBandwidth(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")

	stream := func(mutate ...func(*http.Request)) string {
		opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)
		rec := env.do(t, http.MethodGet,
			"/v1/audio/adaptive/"+track.ID+"?token="+opaque+"&adaptive=true", nil, mutate...)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Header().Get("X-Audio-Quality")
	}

	assert.Equal(t, "high",
		stream(func(r *http.Request) { r.Header.Set("Downlink", "10") }))
	assert.Equal(t, "very_low",
		stream(func(r *http.Request) { r.Header.Set("ECT", "slow-2g") }))
	// Default assumption of 1000 kbps clears 192k with headroom but not 320k.
	assert.Equal(t, "medium", stream())
}

func TestAdaptive_RequestedQuality(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	rec := env.do(t, http.MethodGet,
		"/v1/audio/adaptive/"+track.ID+"?token="+opaque+"&quality=low", nil,
		func(r *http.Request) { r.Header.Set("Downlink", "50") })

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "low", rec.Header().Get("X-Audio-Quality"))
	assert.Equal(t, strconv.Itoa(128), rec.Header().Get("X-Audio-Bitrate"))
	assert.Equal(t, "mp3", rec.Header().Get("X-Audio-Format"))

	// Unknown quality names degrade to medium instead of failing.
	rec = env.do(t, http.MethodGet,
		"/v1/audio/adaptive/"+track.ID+"?token="+opaque+"&quality=ultra", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "medium", rec.Header().Get("X-Audio-Quality"))

	// No parameters at all serves medium non-adaptively.
	rec = env.do(t, http.MethodGet,
		"/v1/audio/adaptive/"+track.ID+"?token="+opaque, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "medium", rec.Header().Get("X-Audio-Quality"))
}

// brokenEncoder fails every build, standing in for a missing or crashing
// ffmpeg.
type brokenEncoder struct{}

func (brokenEncoder) Encode(context.Context, string, string, domain.QualityProfile) error {
	return errors.New("encoder exploded")
}

func TestAdaptive_TranscodeFailureServesSource(t *testing.T) {
	env := newTestEnv(t)
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	// Rebuild the routes around a cache whose encoder always fails.
	env.Router.Cache = service.NewTranscodeCache(filepath.Join(t.TempDir(), "transcoded"), brokenEncoder{})
	env.Router.Mux = http.NewServeMux()
	env.Router.ApplyRoutes()

	rec := env.do(t, http.MethodGet,
		"/v1/audio/adaptive/"+track.ID+"?token="+opaque+"&adaptive=true", nil)

	// The listener gets the untranscoded source, not an error.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5000", rec.Header().Get("Content-Length"))
	assert.Len(t, rec.Body.Bytes(), 5000)
}

func TestStream_RefererAllowlist(t *testing.T) {
	env := newTestEnv(t)
	env.Router.AllowedReferers = []string{"app.linguastream.io"}
	track := env.seedSystemTrack(t, "c1", "n1", 5000)
	env.enroll(t, "u1", "c1")
	opaque := env.mintToken(t, "u1", track, domain.ActionStreamAudio)

	target := "/v1/audio/stream/" + track.ID + "?token=" + opaque

	// Recreate the handler chain with the allow-list in place.
	env.Router.Mux = http.NewServeMux()
	env.Router.ApplyRoutes()

	rec := env.do(t, http.MethodGet, target, nil,
		func(r *http.Request) { r.Header.Set("Referer", "https://app.linguastream.io/course/1") })
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, target, nil,
		func(r *http.Request) { r.Header.Set("Referer", "https://evil.example.com/") })
	require.Equal(t, http.StatusForbidden, rec.Code)

	// No referer at all (native apps) passes.
	rec = env.do(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
