// Package notification is the process-wide toast queue. Toasts expire on
// their own after a duration; manual removal and expiry may race, so removing
// an id that is already gone is a no-op.
package notification

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

const DefaultDuration = 4 * time.Second

type Toast struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToastInput is what callers pass to AddToast. Zero Type means info and zero
// Duration means the sink default.
type ToastInput struct {
	Type     Type
	Message  string
	Duration time.Duration
}

type Option func(*Sink)

func WithDefaultDuration(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.defaultDuration = d
		}
	}
}

// WithOnChange registers an observer called with a snapshot after every
// add or remove. It runs outside the sink's lock.
func WithOnChange(fn func([]Toast)) Option {
	return func(s *Sink) {
		s.onChange = fn
	}
}

type Sink struct {
	mu              sync.Mutex
	toasts          []Toast
	timers          map[string]*time.Timer
	defaultDuration time.Duration
	onChange        func([]Toast)
	closed          bool
	logger          *slog.Logger
}

func NewSink(logger *slog.Logger, opts ...Option) *Sink {
	s := &Sink{
		timers:          make(map[string]*time.Timer),
		defaultDuration: DefaultDuration,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddToast queues a toast and schedules its removal.
func (s *Sink) AddToast(in ToastInput) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Type:      in.Type,
		Message:   in.Message,
		Duration:  in.Duration,
		CreatedAt: time.Now(),
	}
	if t.Type == "" {
		t.Type = TypeInfo
	}

	s.mu.Lock()
	if t.Duration <= 0 {
		t.Duration = s.defaultDuration
	}
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("toast dropped, sink closed", "type", t.Type, "message", t.Message)
		return t
	}
	s.toasts = append(s.toasts, t)
	id := t.ID
	s.timers[id] = time.AfterFunc(t.Duration, func() {
		s.expire(id)
	})
	snapshot := slices.Clone(s.toasts)
	s.mu.Unlock()

	s.logger.Debug("toast added", "toast_id", t.ID, "type", t.Type, "duration", t.Duration)
	s.notify(snapshot)
	return t
}

// RemoveToast dismisses a toast now and cancels its timer.
func (s *Sink) RemoveToast(id string) {
	if timer, removed, snapshot := s.remove(id); removed {
		if timer != nil {
			timer.Stop()
		}
		s.notify(snapshot)
	}
}

func (s *Sink) expire(id string) {
	if _, removed, snapshot := s.remove(id); removed {
		s.logger.Debug("toast expired", "toast_id", id)
		s.notify(snapshot)
	}
}

func (s *Sink) remove(id string) (*time.Timer, bool, []Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.toasts, func(t Toast) bool { return t.ID == id })
	if idx < 0 {
		return nil, false, nil
	}
	s.toasts = slices.Delete(s.toasts, idx, idx+1)
	timer := s.timers[id]
	delete(s.timers, id)
	return timer, true, slices.Clone(s.toasts)
}

// Toasts returns the live toasts, oldest first.
func (s *Sink) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}

// Close cancels every pending expiry and empties the queue.
func (s *Sink) Close() {
	s.mu.Lock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
	s.closed = true
	s.mu.Unlock()
}

func (s *Sink) notify(snapshot []Toast) {
	if s.onChange != nil {
		s.onChange(snapshot)
	}
}
