package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBandwidthEstimator(t *testing.T) {
	t.Parallel()

	newEst := func(t *testing.T) *LRUBandwidthEstimator {
		e, err := NewLRUBandwidthEstimator(16)
		require.NoError(t, err)
		return e
	}

	t.Run("downlink hint wins over everything", func(t *testing.T) {
		e := newEst(t)
		e.RecordKbps("u1", 100)

		got := e.EstimateKbps("u1", ClientHints{DownlinkMbps: 2.5, EffectiveType: "2g"})
		require.Equal(t, 2500, got)
	})

	t.Run("effective type maps to known ladder", func(t *testing.T) {
		e := newEst(t)
		require.Equal(t, 4000, e.EstimateKbps("u1", ClientHints{EffectiveType: "4g"}))
		require.Equal(t, 1000, e.EstimateKbps("u1", ClientHints{EffectiveType: "3g"}))
		require.Equal(t, 250, e.EstimateKbps("u1", ClientHints{EffectiveType: "2g"}))
		require.Equal(t, 100, e.EstimateKbps("u1", ClientHints{EffectiveType: "slow-2g"}))
	})

	t.Run("unknown effective type falls through", func(t *testing.T) {
		e := newEst(t)
		require.Equal(t, DefaultBandwidthKbps, e.EstimateKbps("u1", ClientHints{EffectiveType: "5g"}))
	})

	t.Run("history average used without hints", func(t *testing.T) {
		e := newEst(t)
		e.RecordKbps("u1", 2000)
		e.RecordKbps("u1", 4000)

		require.Equal(t, 3000, e.EstimateKbps("u1", ClientHints{}))
	})

	t.Run("history is bounded to recent samples", func(t *testing.T) {
		e := newEst(t)
		e.RecordKbps("u1", 100000)
		for i := 0; i < maxSamples; i++ {
			e.RecordKbps("u1", 500)
		}

		require.Equal(t, 500, e.EstimateKbps("u1", ClientHints{}))
	})

	t.Run("no hints no history uses default", func(t *testing.T) {
		e := newEst(t)
		require.Equal(t, DefaultBandwidthKbps, e.EstimateKbps("nobody", ClientHints{}))
	})

	t.Run("histories are per user", func(t *testing.T) {
		e := newEst(t)
		e.RecordKbps("fast", 8000)

		require.Equal(t, 8000, e.EstimateKbps("fast", ClientHints{}))
		require.Equal(t, DefaultBandwidthKbps, e.EstimateKbps("slow", ClientHints{}))
	})

	t.Run("zero and negative samples ignored", func(t *testing.T) {
		e := newEst(t)
		e.RecordKbps("u1", 0)
		e.RecordKbps("u1", -5)

		require.Equal(t, DefaultBandwidthKbps, e.EstimateKbps("u1", ClientHints{}))
	})
}
