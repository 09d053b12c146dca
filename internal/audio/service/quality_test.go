package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

func TestSelectProfile(t *testing.T) {
	t.Parallel()

	t.Run("plenty of bandwidth selects highest", func(t *testing.T) {
		p := SelectProfile("mp3", 10000)
		require.Equal(t, "high", p.Name)
		require.Equal(t, 320, p.BitrateKbps)
	})

	t.Run("headroom keeps selection under bandwidth", func(t *testing.T) {
		// 320k needs 384k of bandwidth; 350k only clears 192k's 230.4k.
		p := SelectProfile("mp3", 350)
		require.Equal(t, "medium", p.Name)
	})

	t.Run("very low bandwidth floors at lowest profile", func(t *testing.T) {
		p := SelectProfile("mp3", 10)
		require.Equal(t, "very_low", p.Name)
		require.Equal(t, 64, p.BitrateKbps)
		require.Equal(t, 22050, p.SampleRateHz)
		require.Equal(t, 1, p.Channels)
	})

	t.Run("selection is monotonic in bandwidth", func(t *testing.T) {
		prev := 0
		for bw := 0; bw <= 6000; bw += 50 {
			p := SelectProfile("mp3", bw)
			require.GreaterOrEqual(t, p.BitrateKbps, prev,
				"bitrate regressed at bandwidth %d", bw)
			prev = p.BitrateKbps
		}
	})

	t.Run("ogg ladder differs from mp3", func(t *testing.T) {
		p := SelectProfile("ogg", 10000)
		require.Equal(t, 256, p.BitrateKbps)
		require.Equal(t, "ogg", p.ContainerExt)
	})

	t.Run("unsupported format degrades to default ladder", func(t *testing.T) {
		p := SelectProfile("opus", 10000)
		require.Equal(t, domain.DefaultFormat, p.ContainerExt)
	})
}

func TestProfileByName(t *testing.T) {
	t.Parallel()

	p, ok := ProfileByName("aac", "low")
	require.True(t, ok)
	require.Equal(t, 96, p.BitrateKbps)

	_, ok = ProfileByName("mp3", "ultra")
	require.False(t, ok)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	t.Run("adaptive follows the bandwidth ladder", func(t *testing.T) {
		require.Equal(t, "high", Select(10000, "mp3", "low", true).Name)
		require.Equal(t, "very_low", Select(10, "mp3", "high", true).Name)
	})

	t.Run("non-adaptive honors the requested quality", func(t *testing.T) {
		p := Select(10000, "mp3", "low", false)
		require.Equal(t, "low", p.Name)
		require.Equal(t, 128, p.BitrateKbps)
	})

	t.Run("unknown quality degrades to medium", func(t *testing.T) {
		p := Select(10000, "mp3", "ultra", false)
		require.Equal(t, domain.QualityMedium, p.Name)
	})

	t.Run("unknown format and quality still resolve", func(t *testing.T) {
		p := Select(10000, "opus", "ultra", false)
		require.Equal(t, domain.QualityMedium, p.Name)
		require.Equal(t, domain.DefaultFormat, p.ContainerExt)
	})
}
