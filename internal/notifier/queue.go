package notifier

import (
	"context"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

const DefaultQueueSize = 16

// Queue hands batches of new results to a Notifier running on its own
// goroutine.
type Queue struct {
	notifier Notifier
	batches  chan []league.EnrichedGame
}

// NewQueue buffers up to size batches; size <= 0 uses DefaultQueueSize.
func NewQueue(n Notifier, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		notifier: n,
		batches:  make(chan []league.EnrichedGame, size),
	}
}

// Enqueue never blocks. It reports false and drops the batch when the
// queue is full.
func (q *Queue) Enqueue(games []league.EnrichedGame) bool {
	if len(games) == 0 {
		return true
	}
	batch := make([]league.EnrichedGame, len(games))
	copy(batch, games)

	select {
	case q.batches <- batch:
		return true
	default:
		logger.IncrCounter("notify.dropped")
		logger.Warn("notification queue full, dropping results", logger.Fields{
			"results": len(games),
		})
		return false
	}
}

// Run delivers queued batches until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-q.batches:
			if err := q.notifier.Notify(ctx, batch); err != nil {
				logger.Error("failed to announce new results", logger.Fields{
					"results": len(batch),
				}, err)
			}
		}
	}
}
