package idx_test

import (
	"testing"
	"time"

	"github.com/linguastream/linguastream/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratesUniqueSortedIDs(t *testing.T) {
	t.Parallel()

	const n = 1000
	seen := make(map[idx.ID]struct{}, n)
	var prev idx.ID

	for i := 0; i < n; i++ {
		id := idx.New()
		require.False(t, id.IsZero())

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}

		if prev != idx.Zero {
			require.Less(t, prev.String(), id.String(), "ids must be monotonic")
		}
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	valid := idx.New()
	parsed, err := idx.Parse(valid.String())
	require.NoError(t, err)
	require.Equal(t, valid, parsed)

	t.Run("rejects empty", func(t *testing.T) {
		_, err := idx.Parse("")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := idx.Parse("not-a-ulid")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		parsed, err := idx.Parse("  " + valid.String() + "\n")
		require.NoError(t, err)
		require.Equal(t, valid, parsed)
	})
}

func TestTimeEmbedding(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, idx.Zero.Time().IsZero())
}
