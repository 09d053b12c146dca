package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/store/drivers/sqlite"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/idx"
)

var testSessionSecret = []byte("e2e-session-secret")

// testEnv wires a full router against an in-memory store, temp media dirs
// and a passthrough encoder.
type testEnv struct {
	Router *Router
	Codec  *token.Codec
	Tracks *service.TrackService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	dir := t.TempDir()
	resolver := &service.MediaResolver{
		SystemDir: filepath.Join(dir, "system"),
		CustomDir: filepath.Join(dir, "custom"),
	}
	require.NoError(t, os.MkdirAll(resolver.SystemDir, 0o755))

	codec, err := token.NewCodec([]byte("handler-test-secret"))
	require.NoError(t, err)

	estimator, err := service.NewLRUBandwidthEstimator(64)
	require.NoError(t, err)

	trackService := &service.TrackService{Store: st, Resolver: resolver}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := NewRouter(codec, testSessionSecret, "test", st, logger)
	router.TrackService = trackService
	router.Resolver = resolver
	router.Cache = service.NewTranscodeCache(filepath.Join(dir, "transcoded"), service.CopyEncoder{})
	router.Estimator = estimator
	router.ApplyRoutes()

	return &testEnv{Router: router, Codec: codec, Tracks: trackService}
}

// seedSystemTrack registers a track and writes its audio file with size
// random bytes.
func (e *testEnv) seedSystemTrack(t *testing.T, courseID, unitID string, size int) domain.Track {
	t.Helper()

	now := time.Now().UTC()
	track := domain.Track{
		ID:        idx.New().String(),
		CourseID:  courseID,
		UnitID:    unitID,
		Title:     "Listening practice",
		Format:    "mp3",
		FileSize:  int64(size),
		Duration:  float64(size) / 1000,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.Tracks.Store.Tracks().CreateTrack(context.Background(), track))

	payload := make([]byte, size)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	path := filepath.Join(e.Tracks.Resolver.SystemDir, courseID, unitID, track.ID+".mp3")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	return track
}

func (e *testEnv) enroll(t *testing.T, userID, courseID string) {
	t.Helper()
	require.NoError(t, e.Tracks.Store.CourseAccess().GrantAccess(context.Background(), userID, courseID))
}

// mintToken seals a grant directly, bypassing the issuance endpoint.
func (e *testEnv) mintToken(t *testing.T, userID string, track domain.Track, action domain.Action) string {
	t.Helper()

	opaque, _, err := e.Codec.Issue(domain.Grant{
		SubjectID: userID,
		CourseID:  track.CourseID,
		UnitID:    track.UnitID,
		TrackID:   track.ID,
		Action:    action,
	})
	require.NoError(t, err)
	return opaque
}

// sessionJWT signs a platform session token for userID.
func sessionJWT(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": userID,
		"email":  userID + "@example.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSessionSecret)
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, target string, body []byte, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

func asUser(userID string, t *testing.T) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+sessionJWT(t, userID))
	}
}
