package httpx_test

import (
	"testing"

	"github.com/linguastream/linguastream/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	const size = int64(5000)

	tests := []struct {
		name   string
		header string
		want   httpx.ByteRange
		err    error
	}{
		{
			name:   "explicit range",
			header: "bytes=0-99",
			want:   httpx.ByteRange{Start: 0, End: 99, Length: 100},
		},
		{
			name:   "open ended",
			header: "bytes=4500-",
			want:   httpx.ByteRange{Start: 4500, End: 4999, Length: 500},
		},
		{
			name:   "suffix",
			header: "bytes=-50",
			want:   httpx.ByteRange{Start: 4950, End: 4999, Length: 50},
		},
		{
			name:   "suffix larger than resource",
			header: "bytes=-99999",
			want:   httpx.ByteRange{Start: 0, End: 4999, Length: 5000},
		},
		{
			name:   "end clamped to size",
			header: "bytes=4000-99999",
			want:   httpx.ByteRange{Start: 4000, End: 4999, Length: 1000},
		},
		{
			name:   "single byte",
			header: "bytes=0-0",
			want:   httpx.ByteRange{Start: 0, End: 0, Length: 1},
		},
		{
			name:   "case insensitive unit",
			header: "Bytes=0-9",
			want:   httpx.ByteRange{Start: 0, End: 9, Length: 10},
		},
		{
			name:   "whitespace tolerated",
			header: "bytes= 100-199 ",
			want:   httpx.ByteRange{Start: 100, End: 199, Length: 100},
		},
		{
			name:   "multi-range rejected",
			header: "bytes=0-99,200-299",
			err:    httpx.ErrMultiRange,
		},
		{
			name:   "missing unit",
			header: "0-99",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "empty spec",
			header: "bytes=",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "bare dash",
			header: "bytes=-",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "zero suffix",
			header: "bytes=-0",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "inverted range",
			header: "bytes=200-100",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "non-numeric start",
			header: "bytes=abc-100",
			err:    httpx.ErrMalformedRange,
		},
		{
			name:   "start beyond size",
			header: "bytes=5000-",
			err:    httpx.ErrUnsatisfiableRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := httpx.ParseRange(tt.header, size)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, got.End-got.Start+1, got.Length)
		})
	}
}

func TestParseRangeEmptyResource(t *testing.T) {
	t.Parallel()

	_, err := httpx.ParseRange("bytes=0-0", 0)
	require.ErrorIs(t, err, httpx.ErrUnsatisfiableRange)
}
