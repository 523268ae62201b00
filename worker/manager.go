package worker

import (
	"context"
	"errors"
	"sync"
)

// Worker is a long-running loop that exits when its context is cancelled.
type Worker interface {
	Start(ctx context.Context) error
}

// Manager starts and supervises a set of workers.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

// Start runs all workers, blocks until ctx is cancelled and every worker
// has returned, then reports their errors joined.
func (m *Manager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make([]error, len(m.workers))
	for i, w := range m.workers {
		wg.Add(1)
		go func(i int, w Worker) {
			defer wg.Done()
			errs[i] = w.Start(ctx)
		}(i, w)
	}
	<-ctx.Done()
	wg.Wait()
	return errors.Join(errs...)
}
