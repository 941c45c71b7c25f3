package audit

import (
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

type Event struct {
	BusinessID uint
	StaffID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			logger.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch never blocks: when the queue is full or closed the event is
// dropped. A nil dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		logger.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}
	select {
	case d.queue <- ev:
	default:
		logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue. Later events are dropped.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
