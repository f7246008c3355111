package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/api/metrics"
	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes infraction reports to a fixed set of workers using
// consistent hashing on the celular, so all strikes for one client are
// processed by the same worker in arrival order. Combined with the
// conditional decrement in the store, this keeps concurrent reports for the
// same client from ever racing each other.
type Dispatcher struct {
	workers []chan ports.InfraccionInput
	service ports.InfraccionService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.InfraccionService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.InfraccionInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.InfraccionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a report to the worker responsible for its celular.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.InfraccionInput) {
	idx := d.shardIndex(in.Celular)
	d.workers[idx] <- in
	metrics.InfraccionesQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple reports preserving per-client ordering.
func (d *Dispatcher) EnqueueBatch(ins []ports.InfraccionInput) {
	for _, in := range ins {
		d.Enqueue(in)
	}
}

// shardIndex maps a celular deterministically to a worker index.
func (d *Dispatcher) shardIndex(celular string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(celular))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.InfraccionInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("celular", in.Celular).
					Str("reporte_id", in.ReporteID).
					Int("worker_id", id).
					Msg("infraccion processing failed")
			}
			metrics.InfraccionesQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
