package service

import (
	"context"
	"sync"

	"github.com/qs3c/debook/internal/pkg/event"
)

// fakeEmitter records emitted events
type fakeEmitter struct {
	mu     sync.Mutex
	events []*event.InteractionEvent
	err    error
}

func (e *fakeEmitter) Emit(_ context.Context, ev *event.InteractionEvent) error {
	if e.err != nil {
		return e.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}
