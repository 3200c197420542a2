// Package cache holds cache implementations that need no external service.
package cache

import (
	"context"
	"time"
)

// Noop never stores anything; every lookup is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) DeletePrefix(context.Context, string) error { return nil }
