package approvals

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// Counts holds the pending-approval totals shown on the admin dashboard.
type Counts struct {
	PendingOrganizers int `json:"pending_organizers"`
	PendingStadiums   int `json:"pending_stadiums"`
}

// Source fetches the current pending-approval counts.
type Source interface {
	Fetch(ctx context.Context) (Counts, error)
}

// APISource fetches counts from the admin endpoint.
type APISource struct {
	api *api.Client
}

// NewAPISource creates a Source backed by the backend API.
func NewAPISource(apiClient *api.Client) *APISource {
	return &APISource{api: apiClient}
}

func (s *APISource) Fetch(ctx context.Context) (Counts, error) {
	var counts Counts
	if err := s.api.Get(ctx, "/admin/approvals/pending", &counts); err != nil {
		return Counts{}, fmt.Errorf("fetch pending approvals: %w", err)
	}
	return counts, nil
}

// Watcher turns pending-approval counts into a subscription: subscribers are
// invoked only when the counts change. Polling is the implementation detail
// behind the interface; a push-based source can replace it without touching
// subscribers.
type Watcher struct {
	source   Source
	interval time.Duration
	log      *logger.Logger

	mu          sync.Mutex
	subscribers []func(Counts)
	last        *Counts

	done chan struct{}
	once sync.Once
}

// NewWatcher creates a Watcher polling the source at the given interval.
func NewWatcher(source Source, interval time.Duration, log *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		source:   source,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Subscribe registers a callback invoked whenever the counts change. The
// first successful fetch always notifies.
func (w *Watcher) Subscribe(fn func(Counts)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subscribers = append(w.subscribers, fn)
}

// Start begins polling until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop halts polling.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	counts, err := w.source.Fetch(ctx)
	if err != nil {
		w.log.ErrorWithContext(ctx, "approvals poll failed", err, nil)
		return
	}

	w.mu.Lock()
	changed := w.last == nil || *w.last != counts
	if changed {
		w.last = &counts
	}
	subscribers := make([]func(Counts), len(w.subscribers))
	copy(subscribers, w.subscribers)
	w.mu.Unlock()

	if !changed {
		return
	}

	for _, fn := range subscribers {
		fn(counts)
	}
}
