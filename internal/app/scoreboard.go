package app

import (
	"sync"

	"portal-learning/internal/domain"
)

// ScoreboardHub fans scoreboard snapshots out to live subscribers.
type ScoreboardHub struct {
	mu          sync.Mutex
	subscribers map[chan domain.Scoreboard]struct{}
}

func NewScoreboardHub() *ScoreboardHub {
	return &ScoreboardHub{subscribers: make(map[chan domain.Scoreboard]struct{})}
}

// Subscribe registers a listener. The caller must invoke the returned cancel
// function to avoid leaks.
func (h *ScoreboardHub) Subscribe() (<-chan domain.Scoreboard, func()) {
	ch := make(chan domain.Scoreboard, 8)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the snapshot to every subscriber. A slow subscriber loses
// its oldest pending snapshot rather than blocking the publisher.
func (h *ScoreboardHub) Publish(board domain.Scoreboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
}
