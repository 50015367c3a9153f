package service_test

import (
	"context"
	"errors"
	"time"
)

type memKV struct {
	values  map[string]string
	getErr  error
	setErr  error
	setHits int
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.setHits++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

var errDiskFull = errors.New("disk full")

// manualClock returns now until advanced.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }
