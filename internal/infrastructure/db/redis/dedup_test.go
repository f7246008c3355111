package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestChecker(t *testing.T) (*DedupChecker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDedupChecker(client), mr
}

func TestDedup_UnseenReport(t *testing.T) {
	checker, _ := newTestChecker(t)

	dup, err := checker.IsDuplicate(context.Background(), "12345678", "r-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if dup {
		t.Error("unseen report must not be a duplicate")
	}
}

func TestDedup_MarkThenCheck(t *testing.T) {
	checker, mr := newTestChecker(t)
	ctx := context.Background()

	if err := checker.Mark(ctx, "12345678", "r-1"); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	dup, err := checker.IsDuplicate(ctx, "12345678", "r-1")
	if err != nil {
		t.Fatalf("IsDuplicate: %v", err)
	}
	if !dup {
		t.Error("marked report must be a duplicate")
	}

	if ttl := mr.TTL("infraccion:12345678:r-1"); ttl != dedupTTL {
		t.Errorf("ttl = %v, want %v", ttl, dedupTTL)
	}
}

func TestDedup_KeysAreScopedPerCelularAndReporte(t *testing.T) {
	checker, _ := newTestChecker(t)
	ctx := context.Background()

	if err := checker.Mark(ctx, "12345678", "r-1"); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	for _, tc := range []struct{ celular, reporteID string }{
		{"12345678", "r-2"},
		{"87654321", "r-1"},
	} {
		dup, err := checker.IsDuplicate(ctx, tc.celular, tc.reporteID)
		if err != nil {
			t.Fatalf("IsDuplicate(%s, %s): %v", tc.celular, tc.reporteID, err)
		}
		if dup {
			t.Errorf("(%s, %s) must not collide with the marked key", tc.celular, tc.reporteID)
		}
	}
}

func TestDedup_ExpiredMarkIsForgotten(t *testing.T) {
	checker, mr := newTestChecker(t)
	ctx := context.Background()

	if err := checker.Mark(ctx, "12345678", "r-1"); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	mr.FastForward(dedupTTL + time.Minute)

	dup, err := checker.IsDuplicate(ctx, "12345678", "r-1")
	if err != nil {
		t.Fatalf("IsDuplicate: %v", err)
	}
	if dup {
		t.Error("expired mark must not count as duplicate")
	}
}
