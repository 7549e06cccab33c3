package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/smilecare/clinic-api/internal/api/metrics"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher delivers booking confirmations on a fixed set of workers,
// sharded by patient id so one patient's confirmations arrive in booking
// order. Delivery is a structured log line; the clinic has no mail gateway.
type Dispatcher struct {
	workers []chan ports.BookingConfirmation
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.BookingConfirmation, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BookingConfirmation, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a confirmation to the worker owning its patient. Non-blocking
// up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(confirmation ports.BookingConfirmation) {
	idx := d.shardIndex(confirmation.PatientID)
	d.workers[idx] <- confirmation
	metrics.ConfirmationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a patient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(patientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(patientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BookingConfirmation) {
	for {
		select {
		case <-ctx.Done():
			return
		case confirmation, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(id, confirmation)
			metrics.ConfirmationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(workerID int, confirmation ports.BookingConfirmation) {
	d.log.Info().
		Int("worker_id", workerID).
		Str("appointment_id", confirmation.AppointmentID).
		Str("patient_id", confirmation.PatientID).
		Str("date", confirmation.Date).
		Str("time", confirmation.Time).
		Msg("booking confirmation sent")
	metrics.ConfirmationsSentTotal.Inc()
}
