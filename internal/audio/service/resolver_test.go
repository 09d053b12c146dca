package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

func testResolver(t *testing.T) *MediaResolver {
	t.Helper()
	dir := t.TempDir()
	return &MediaResolver{
		SystemDir: filepath.Join(dir, "system"),
		CustomDir: filepath.Join(dir, "custom"),
	}
}

func place(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
}

func grantFor(track string) domain.Grant {
	return domain.Grant{
		SubjectID: "u1",
		CourseID:  "c1",
		UnitID:    "n1",
		TrackID:   track,
		Action:    domain.ActionStreamAudio,
	}
}

func TestMediaResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("finds system track", func(t *testing.T) {
		r := testResolver(t)
		want := filepath.Join(r.SystemDir, "c1", "n1", "t1.mp3")
		place(t, want)

		got, err := r.Resolve(grantFor("t1"))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("custom upload shadows system track", func(t *testing.T) {
		r := testResolver(t)
		place(t, filepath.Join(r.SystemDir, "c1", "n1", "t1.mp3"))
		want := filepath.Join(r.CustomDir, "u1", "c1", "n1", "t1.mp3")
		place(t, want)

		got, err := r.Resolve(grantFor("t1"))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("probes alternative containers", func(t *testing.T) {
		r := testResolver(t)
		want := filepath.Join(r.SystemDir, "c1", "n1", "t1.flac")
		place(t, want)

		got, err := r.Resolve(grantFor("t1"))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("mp3 wins when multiple containers exist", func(t *testing.T) {
		r := testResolver(t)
		place(t, filepath.Join(r.SystemDir, "c1", "n1", "t1.ogg"))
		want := filepath.Join(r.SystemDir, "c1", "n1", "t1.mp3")
		place(t, want)

		got, err := r.Resolve(grantFor("t1"))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("missing track reports not found", func(t *testing.T) {
		r := testResolver(t)
		_, err := r.Resolve(grantFor("ghost"))
		require.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("rejects traversal attempts", func(t *testing.T) {
		r := testResolver(t)
		for _, track := range []string{"..", "../etc", "a/b", `a\b`, ""} {
			_, err := r.Resolve(grantFor(track))
			require.Error(t, err, "track %q", track)
		}
	})
}

func TestMediaResolver_CustomPath(t *testing.T) {
	t.Parallel()

	r := testResolver(t)

	path, err := r.CustomPath("u1", "c1", "n1", "t1", ".WAV")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(r.CustomDir, "u1", "c1", "n1", "t1.wav"), path)

	_, err = r.CustomPath("u1", "c1", "n1", "t1", "exe")
	require.Error(t, err)

	_, err = r.CustomPath("..", "c1", "n1", "t1", "mp3")
	require.Error(t, err)
}
