package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/pkg/cache"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

const eventsSnapshotKey = "catalog:events"

// Loader fetches the published-event catalog from the backend with a
// cache-aside snapshot so repeated listings within the TTL do not re-hit the
// API. Refresh drops the snapshot, which is how booking confirmations make
// new seat availability visible.
type Loader struct {
	api   *api.Client
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

// NewLoader creates a Loader.
func NewLoader(apiClient *api.Client, cacheSvc cache.Service, ttl time.Duration, log *logger.Logger) *Loader {
	return &Loader{
		api:   apiClient,
		cache: cacheSvc,
		ttl:   ttl,
		log:   log,
	}
}

// List returns all published events, served from the snapshot cache when warm.
func (l *Loader) List(ctx context.Context) ([]Event, error) {
	var events []Event
	err := l.cache.GetOrSet(ctx, eventsSnapshotKey, l.ttl, func() (interface{}, error) {
		var fetched []Event
		if err := l.api.Get(ctx, "/events", &fetched); err != nil {
			return nil, err
		}
		return fetched, nil
	}, &events)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get fetches a single event by id, bypassing the snapshot so seat maps are
// always current when a booking session starts.
func (l *Loader) Get(ctx context.Context, eventID string) (*Event, error) {
	var event Event
	if err := l.api.Get(ctx, "/events/"+eventID, &event); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return &event, nil
}

// Refresh invalidates the snapshot and re-fetches the catalog. Called after
// a successful booking so availability reflects the new state.
func (l *Loader) Refresh(ctx context.Context) ([]Event, error) {
	if err := l.cache.Delete(ctx, eventsSnapshotKey); err != nil {
		return nil, fmt.Errorf("invalidate snapshot: %w", err)
	}

	events, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	l.log.LogCatalogRefreshed(ctx, len(events))
	return events, nil
}
