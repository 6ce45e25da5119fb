package db

import (
	"context"
	"time"
)

// Store is the database facade used by the field registry.
type Store interface {
	Pinger
	KVReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVReader reads plain string values.
type KVReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}
