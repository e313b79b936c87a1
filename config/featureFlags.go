package config

import (
	"os"
	"strings"
	"time"
)

// KVProvider selects the snapshot-store backend.
//
// Set via env:
// - KV_PROVIDER=memory|mysql|redis (default memory)
func KVProvider() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("KV_PROVIDER")))
	if v == "" {
		return "memory"
	}
	return v
}

// LaborSyncInterval is how often the labor-cost syncer resyncs every job
// from the time-clock and piece-rate sources.
//
// Set via env:
// - LABOR_SYNC_INTERVAL_SECONDS (default 30)
func LaborSyncInterval() time.Duration {
	return time.Duration(intFromEnv("LABOR_SYNC_INTERVAL_SECONDS", 30)) * time.Second
}

// LaborSyncPauseTimeout is how long a manual pause of the labor-cost syncer
// lasts before it self-clears.
//
// Set via env:
// - LABOR_SYNC_PAUSE_TIMEOUT_SECONDS (default 60)
func LaborSyncPauseTimeout() time.Duration {
	return time.Duration(intFromEnv("LABOR_SYNC_PAUSE_TIMEOUT_SECONDS", 60)) * time.Second
}
