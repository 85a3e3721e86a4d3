package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SelfHealOnRead restores the legacy fused behavior where a GET on the
// cases module promotes raw-only form rows into the Cases sheet as a side
// effect of the read. Default off: promotions belong to the sheetsync
// worker, which keeps reads idempotent.
//
// Set via env:
// - SELF_HEAL_ON_READ=true
func SelfHealOnRead() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SELF_HEAL_ON_READ")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// HardDeleteFor reports whether DELETE on the given entity performs a
// physical row removal instead of the default status-flag soft delete.
// Reserved for administrative purge.
//
// Set via env:
// - HARD_DELETE_ENTITIES="cases,assets"
//
// Entity keys are case-insensitive.
func HardDeleteFor(entity string) bool {
	entity = strings.ToLower(strings.TrimSpace(entity))
	if entity == "" {
		return false
	}
	raw := os.Getenv("HARD_DELETE_ENTITIES")
	if strings.TrimSpace(raw) == "" {
		return false
	}
	for _, part := range strings.Split(raw, ",") {
		if strings.ToLower(strings.TrimSpace(part)) == entity {
			return true
		}
	}
	return false
}

// RangeCacheTTL is the Redis cache lifetime for sheet range reads.
// Zero disables the cache layer.
//
// Set via env:
// - RANGE_CACHE_TTL_SECONDS=30
func RangeCacheTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("RANGE_CACHE_TTL_SECONDS"))
	if raw == "" {
		return 30 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 30 * time.Second
	}
	return time.Duration(secs) * time.Second
}

// SyncInterval is the period of the sheetsync self-heal worker.
//
// Set via env:
// - SYNC_INTERVAL_MINUTES=5
func SyncInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SYNC_INTERVAL_MINUTES"))
	if raw == "" {
		return 5 * time.Minute
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(mins) * time.Minute
}

// SheetOpTimeout bounds every single call against the Sheets API.
//
// Set via env:
// - SHEET_OP_TIMEOUT_SECONDS=15
func SheetOpTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SHEET_OP_TIMEOUT_SECONDS"))
	if raw == "" {
		return 15 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 15 * time.Second
	}
	return time.Duration(secs) * time.Second
}
