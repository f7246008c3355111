package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reports older than a day are past any realistic device retry window.
const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks for infraction reports backed by
// Redis. Key format: infraccion:<celular>:<reporte_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact report has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, celular, reporteID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(celular, reporteID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this report has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, celular, reporteID string) error {
	return d.client.Set(ctx, d.key(celular, reporteID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(celular, reporteID string) string {
	return fmt.Sprintf("infraccion:%s:%s", celular, reporteID)
}
