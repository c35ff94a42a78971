package approvals

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

type scriptedSource struct {
	mu      sync.Mutex
	results []Counts
	err     error
	calls   int
}

func (s *scriptedSource) Fetch(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Counts{}, s.err
	}
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	return s.results[idx], nil
}

func collect(t *testing.T, source Source, polls int) []Counts {
	t.Helper()

	watcher := NewWatcher(source, 5*time.Millisecond, logger.GetDefault())

	var mu sync.Mutex
	var seen []Counts
	watcher.Subscribe(func(c Counts) {
		mu.Lock()
		seen = append(seen, c)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	watcher.Start(ctx)

	time.Sleep(time.Duration(polls) * 10 * time.Millisecond)
	watcher.Stop()
	cancel()

	mu.Lock()
	defer mu.Unlock()
	return append([]Counts(nil), seen...)
}

func TestWatcher_NotifiesOnFirstFetch(t *testing.T) {
	source := &scriptedSource{results: []Counts{{PendingOrganizers: 2, PendingStadiums: 1}}}

	seen := collect(t, source, 2)

	assert.NotEmpty(t, seen)
	assert.Equal(t, Counts{PendingOrganizers: 2, PendingStadiums: 1}, seen[0])
}

func TestWatcher_FiresOnlyOnChange(t *testing.T) {
	source := &scriptedSource{results: []Counts{
		{PendingOrganizers: 1},
		{PendingOrganizers: 1},
		{PendingOrganizers: 1},
		{PendingOrganizers: 3},
		{PendingOrganizers: 3},
	}}

	seen := collect(t, source, 6)

	// identical polls collapse into distinct notifications
	assert.LessOrEqual(t, len(seen), 2)
	assert.Equal(t, Counts{PendingOrganizers: 1}, seen[0])
	if len(seen) == 2 {
		assert.Equal(t, Counts{PendingOrganizers: 3}, seen[1])
	}
}

func TestWatcher_FetchErrorDoesNotNotify(t *testing.T) {
	source := &scriptedSource{err: errors.New("backend unreachable")}

	seen := collect(t, source, 2)

	assert.Empty(t, seen)
}
