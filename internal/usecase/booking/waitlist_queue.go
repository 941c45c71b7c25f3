package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

const waitlistCheckTimeout = 10 * time.Second

// WaitlistQueue runs waitlist checks in the background so cancellation never
// waits on them. It drops work when the buffer is full.
type WaitlistQueue struct {
	check *CheckWaitlistOnCancellation
	queue chan uint
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewWaitlistQueue(check *CheckWaitlistOnCancellation, size int) *WaitlistQueue {
	if size <= 0 {
		size = 100
	}
	q := &WaitlistQueue{
		check: check,
		queue: make(chan uint, size),
		done:  make(chan struct{}),
	}

	go q.worker()
	return q
}

func (q *WaitlistQueue) worker() {
	defer close(q.done)
	for id := range q.queue {
		ctx, cancel := context.WithTimeout(context.Background(), waitlistCheckTimeout)
		q.check.Execute(ctx, id)
		cancel()
	}
}

// Enqueue drops the check when the buffer is full or the queue is closed.
func (q *WaitlistQueue) Enqueue(appointmentID uint) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		logger.Warn("waitlist queue closed, dropping check", "appointment_id", appointmentID)
		return
	}
	select {
	case q.queue <- appointmentID:
	default:
		logger.Warn("waitlist queue full, dropping check", "appointment_id", appointmentID)
	}
}

// Close waits for queued checks to finish.
func (q *WaitlistQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()
	<-q.done
}

var _ domain.WaitlistTrigger = (*WaitlistQueue)(nil)
