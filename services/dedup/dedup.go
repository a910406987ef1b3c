// Package dedup tracks recently seen message identifiers so redelivered
// webhook events are handled once. The set is bounded by both a time window
// and a maximum entry count; the persistent store's timestamp remains the
// source of truth for event order.
package dedup

import (
	"log"
	"sync"
	"time"
)

type DedupService struct {
	enabled    bool
	window     time.Duration
	maxEntries int

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewDedupService(enabled bool, window time.Duration, maxEntries int) *DedupService {
	return &DedupService{
		enabled:    enabled,
		window:     window,
		maxEntries: maxEntries,
		seen:       make(map[string]time.Time),
	}
}

// CheckAndMark returns true if the message ID was already seen within the
// window. Unseen IDs are marked as seen.
func (s *DedupService) CheckAndMark(messageID string) bool {
	if !s.enabled || messageID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if seenAt, exists := s.seen[messageID]; exists && now.Sub(seenAt) < s.window {
		return true
	}

	s.evictLocked(now)
	s.seen[messageID] = now
	return false
}

// evictLocked drops expired entries, then oldest entries if still over
// capacity. Caller must hold the mutex.
func (s *DedupService) evictLocked(now time.Time) {
	for id, seenAt := range s.seen {
		if now.Sub(seenAt) >= s.window {
			delete(s.seen, id)
		}
	}

	// A non-positive maxEntries disables the capacity bound; the loop below
	// would otherwise never terminate once the map is empty.
	if s.maxEntries <= 0 {
		return
	}

	for len(s.seen) >= s.maxEntries {
		oldestID := ""
		var oldestAt time.Time
		for id, seenAt := range s.seen {
			if oldestID == "" || seenAt.Before(oldestAt) {
				oldestID = id
				oldestAt = seenAt
			}
		}
		delete(s.seen, oldestID)
		log.Printf("⚠️ Dedup set at capacity (%d entries), evicted oldest message ID", s.maxEntries)
	}
}

// Size returns the current number of tracked message IDs
func (s *DedupService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
