package audit

import (
	"context"
	"sync"
	"time"

	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

type Event struct {
	UserID   *string   `json:"user_id,omitempty"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID *string   `json:"entity_id,omitempty"`
	Metadata any       `json:"metadata,omitempty"`
	At       time.Time `json:"at"`
}

// Sink é um destino de eventos de auditoria.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher entrega eventos de forma assíncrona; a API nunca espera por auditoria.
type Dispatcher struct {
	sinks  []Sink
	log    *applog.Logger
	queue  chan Event
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

const queueSize = 100

func NewDispatcher(logger *applog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		log:   logger.WithComponent(applog.ComponentAudit),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Error("audit sink failed",
					applog.FieldOperation, ev.Action,
					applog.FieldError, err.Error(),
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", applog.FieldOperation, ev.Action)
	}
}

// Close para de aceitar eventos e espera a fila esvaziar.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

// StringPtr ajuda a montar EntityID/UserID.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
