package snapshot

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
)

// Source supplies the raw tables of the league page.
type Source interface {
	Fetch(ctx context.Context) (league.RawTables, error)
}

// DefaultRefreshTimeout bounds a fetch when Options.RefreshTimeout is unset.
const DefaultRefreshTimeout = 2 * time.Minute

// UpdateFunc is called after a new snapshot was published. results holds the
// fixtures that became Played since the previous snapshot. It runs on the
// refresh path and must not block; hand slow work to a queue.
type UpdateFunc func(snap *Snapshot, results []league.EnrichedGame)

// Refresher fetches the page, builds a Snapshot and publishes it to a Store.
// A failed refresh leaves the previous snapshot in place.
type Refresher struct {
	source Source
	store  *Store
	opts   Options
	now    func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	listeners []UpdateFunc
	lastErr   error
}

// NewRefresher creates a Refresher publishing to store.
func NewRefresher(source Source, store *Store, opts Options) *Refresher {
	return &Refresher{
		source: source,
		store:  store,
		opts:   opts,
		now:    time.Now,
	}
}

// OnUpdate registers fn to run after every successful refresh.
func (r *Refresher) OnUpdate(fn UpdateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// LastError returns the error of the most recent refresh, or nil.
func (r *Refresher) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Refresh loads a new snapshot. Concurrent calls share a single fetch.
// The fetch is detached from ctx and bounded by RefreshTimeout instead;
// a caller whose ctx ends stops waiting with ctx.Err() while the fetch
// carries on for the others.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	timeout := r.opts.RefreshTimeout
	if timeout <= 0 {
		timeout = DefaultRefreshTimeout
	}

	ch := r.group.DoChan("refresh", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return r.refresh(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			logger.Debug("refresh joined in-flight fetch", nil)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (r *Refresher) refresh(ctx context.Context) (*Snapshot, error) {
	start := r.now()

	tables, err := r.source.Fetch(ctx)
	if err != nil {
		logger.IncrCounter("refresh.failure")
		logger.Error("refresh failed, keeping previous data", logger.Fields{
			"source": r.opts.Source,
		}, err)
		r.setLastErr(err)
		return nil, err
	}

	snap := Build(tables, r.opts, r.now())
	previous := r.store.Swap(snap)

	var results []league.EnrichedGame
	if previous != nil {
		results = league.NewResults(previous.Schedule, snap.Schedule)
	}

	r.setLastErr(nil)
	logger.IncrCounter("refresh.success")
	logger.RecordTiming("refresh.duration", r.now().Sub(start))
	logger.SetGauge("schedule.games", float64(len(snap.Schedule)))
	logger.SetGauge("standings.rows", float64(len(snap.Standings)))
	logger.SetGauge("teams", float64(len(snap.Teams)))

	logger.Info("snapshot refreshed", logger.Fields{
		"games":       len(snap.Schedule),
		"standings":   len(snap.Standings),
		"teams":       len(snap.Teams),
		"new_results": len(results),
	})

	for _, a := range snap.Anomalies {
		logger.Warn("schedule anomaly", logger.Fields{
			"game":   a.Game,
			"kind":   string(a.Kind),
			"detail": a.Detail,
		})
	}

	r.mu.Lock()
	listeners := append([]UpdateFunc(nil), r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(snap, results)
	}

	return snap, nil
}

func (r *Refresher) setLastErr(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// Run refreshes every interval until ctx is cancelled. Failed refreshes are
// logged and retried on the next tick. A non-positive interval disables the
// loop; Run then only waits for ctx.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// errors are logged and counted by refresh
			_, _ = r.Refresh(ctx)
		}
	}
}
