// Package storage is the persistence adapter: a key-value snapshot store.
// Each key holds one JSON-serialized collection written wholesale on every
// mutation (last-writer-wins, no versioning, no transactions).
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildledger/jobs_backend/config"
)

var ErrKeyNotFound = errors.New("key not found")

// Fixed snapshot keys.
const (
	KeyJobs               = "jobs"
	KeyEmployees          = "employees"
	KeyTimeEntries        = "timeEntries"
	KeyPieceRateEntries   = "pieceRateEntries"
	KeyChecklistTemplates = "checklistTemplates"
)

type Store interface {
	// Load unmarshals the snapshot under key into out.
	// Returns ErrKeyNotFound when no snapshot exists yet.
	Load(ctx context.Context, key string, out any) error
	// Save overwrites the snapshot under key with the JSON form of value.
	Save(ctx context.Context, key string, value any) error
}

// NewFromEnv selects the backend from KV_PROVIDER. The mysql and redis
// providers expect config.ConnectDatabaseWithRetry / ConnectRedisWithRetry
// to have been called first.
func NewFromEnv() (Store, error) {
	switch provider := config.KVProvider(); provider {
	case "memory":
		return NewMemoryStore(), nil
	case "mysql":
		db := config.GetDB()
		if db == nil {
			return nil, errors.New("KV_PROVIDER=mysql but database not connected")
		}
		return NewGormStore(db)
	case "redis":
		rdb := config.GetRedisDB()
		if rdb == nil {
			return nil, errors.New("KV_PROVIDER=redis but redis not connected")
		}
		return NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown KV_PROVIDER %q", provider)
	}
}
