package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

type recordingService struct {
	mu        sync.Mutex
	processed []ports.InfraccionInput
	done      chan struct{}
	want      int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Process(_ context.Context, in ports.InfraccionInput) error {
	s.mu.Lock()
	s.processed = append(s.processed, in)
	if len(s.processed) == s.want {
		close(s.done)
	}
	s.mu.Unlock()
	return nil
}

func (s *recordingService) wait(t *testing.T) []ports.InfraccionInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reports to be processed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.InfraccionInput, len(s.processed))
	copy(out, s.processed)
	return out
}

func TestDispatcher_ProcessesEnqueuedReports(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.InfraccionInput{
		{Celular: "11111111", ReporteID: "r-1"},
		{Celular: "22222222", ReporteID: "r-2"},
		{Celular: "33333333", ReporteID: "r-3"},
	})

	processed := svc.wait(t)
	if len(processed) != 3 {
		t.Fatalf("processed %d reports, want 3", len(processed))
	}
}

func TestDispatcher_SameCelularKeepsOrder(t *testing.T) {
	const n = 50
	svc := newRecordingService(n)
	d := NewDispatcher(8, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(ports.InfraccionInput{Celular: "12345678", ReporteID: fmt.Sprintf("r-%d", i)})
	}

	processed := svc.wait(t)
	for i, in := range processed {
		if want := fmt.Sprintf("r-%d", i); in.ReporteID != want {
			t.Fatalf("report %d out of order: got %s, want %s", i, in.ReporteID, want)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	for _, celular := range []string{"11111111", "22222222", "87654321"} {
		first := d.shardIndex(celular)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(celular); got != first {
				t.Fatalf("shardIndex(%s) not stable: %d vs %d", celular, got, first)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shardIndex(%s) = %d out of range", celular, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	svc := newRecordingService(1)
	d := NewDispatcher(1, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(ports.InfraccionInput{Celular: "12345678", ReporteID: "r-1"})
	svc.wait(t)

	cancel()
	// Workers drain nothing after cancellation; the enqueue below must not
	// be processed.
	time.Sleep(50 * time.Millisecond)
	d.Enqueue(ports.InfraccionInput{Celular: "12345678", ReporteID: "r-2"})
	time.Sleep(100 * time.Millisecond)

	svc.mu.Lock()
	got := len(svc.processed)
	svc.mu.Unlock()
	if got != 1 {
		t.Fatalf("processed %d reports after cancel, want 1", got)
	}
}
