package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/internal/shared/config"
	"github.com/BHAVY1503/eventease-client/internal/shared/session"
	"github.com/BHAVY1503/eventease-client/pkg/cache"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

func newLoaderBackend(t *testing.T, events func() []Event) (*Loader, *int) {
	t.Helper()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "success",
			"status_code": http.StatusOK,
			"message":     "ok",
			"data":        events(),
		})
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, session.New(), logger.GetDefault())
	loader := NewLoader(client, cache.NewMemory(), time.Minute, logger.GetDefault())
	return loader, &hits
}

func TestLoader_ListServesFromSnapshot(t *testing.T) {
	loader, hits := newLoaderBackend(t, func() []Event {
		return []Event{{ID: "1", Name: "Jazz Night"}}
	})

	first, err := loader.List(context.Background())
	require.NoError(t, err)
	second, err := loader.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, *hits, "second listing must come from the snapshot")
}

func TestLoader_RefreshShowsNewAvailability(t *testing.T) {
	booked := 2
	loader, hits := newLoaderBackend(t, func() []Event {
		return []Event{{ID: "1", Name: "Jazz Night", NumberOfSeats: 10, BookedSeats: booked}}
	})

	before, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, before[0].Available())

	// a booking of 3 seats lands server-side
	booked += 3

	after, err := loader.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, after[0].Available())
	assert.Equal(t, 2, *hits)
}
