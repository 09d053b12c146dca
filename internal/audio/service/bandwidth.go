package service

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBandwidthKbps is assumed when no hint and no history exists.
const DefaultBandwidthKbps = 1000

// maxSamples bounds the per-user throughput history used for averaging.
const maxSamples = 8

// ClientHints carries the network signals a client volunteered with the
// request. Zero values mean "not provided".
type ClientHints struct {
	// DownlinkMbps is the Downlink header value in megabits per second.
	DownlinkMbps float64
	// EffectiveType is the ECT header value: "4g", "3g", "2g", "slow-2g".
	EffectiveType string
}

// ectKbps maps effective connection types to conservative kbps estimates.
var ectKbps = map[string]int{
	"4g":      4000,
	"3g":      1000,
	"2g":      250,
	"slow-2g": 100,
}

// BandwidthEstimator resolves a per-user bandwidth figure and absorbs
// measured throughput after each stream completes.
type BandwidthEstimator interface {
	// EstimateKbps returns the best available bandwidth estimate, trying
	// explicit hints first, then recorded history, then a safe default.
	EstimateKbps(userID string, hints ClientHints) int
	// RecordKbps folds a measured throughput sample into the user's history.
	RecordKbps(userID string, kbps int)
}

type bandwidthHistory struct {
	mu      sync.Mutex
	samples []int
	next    int
	full    bool
}

func (h *bandwidthHistory) record(kbps int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples[h.next] = kbps
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}
}

func (h *bandwidthHistory) average() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.next
	if h.full {
		n = len(h.samples)
	}
	if n == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range h.samples[:n] {
		sum += s
	}
	return sum / n, true
}

// LRUBandwidthEstimator keeps a bounded per-user history of throughput
// samples. Eviction is by recency, so active listeners keep their history
// and idle ones age out.
type LRUBandwidthEstimator struct {
	cache *lru.Cache[string, *bandwidthHistory]
}

// NewLRUBandwidthEstimator sizes the history cache for maxUsers concurrent
// listeners.
func NewLRUBandwidthEstimator(maxUsers int) (*LRUBandwidthEstimator, error) {
	cache, err := lru.New[string, *bandwidthHistory](maxUsers)
	if err != nil {
		return nil, err
	}
	return &LRUBandwidthEstimator{cache: cache}, nil
}

func (e *LRUBandwidthEstimator) EstimateKbps(userID string, hints ClientHints) int {
	if hints.DownlinkMbps > 0 {
		return int(hints.DownlinkMbps * 1000)
	}
	if kbps, ok := ectKbps[hints.EffectiveType]; ok {
		return kbps
	}
	if h, ok := e.cache.Get(userID); ok {
		if avg, ok := h.average(); ok {
			return avg
		}
	}
	return DefaultBandwidthKbps
}

func (e *LRUBandwidthEstimator) RecordKbps(userID string, kbps int) {
	if kbps <= 0 || userID == "" {
		return
	}
	h := &bandwidthHistory{samples: make([]int, maxSamples)}
	if prev, ok, _ := e.cache.PeekOrAdd(userID, h); ok {
		h = prev
	}
	h.record(kbps)
}
