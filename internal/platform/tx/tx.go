package tx

import (
	"context"
	"sync"
)

// Manager wraps transactional boundaries for multi-adapter operations.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly. The file and sqlite adapters commit each write
// on their own, so there is nothing to roll back.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// SerialManager runs one boundary at a time. The TUI can fire an automatic
// end and a palette end for the same focus; the second one must observe the
// first one's result.
type SerialManager struct {
	mu sync.Mutex
}

func (m *SerialManager) Within(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
