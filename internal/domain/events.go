package domain

import (
	"context"
	"log/slog"
	"sync"

	"github.com/smallnest/chanx"

	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

const eventQueueInitialCapacity = 8

// Publisher broadcasts protocol events.
type Publisher interface {
	Publish(event protocol.Event)
}

type subscription struct {
	ctx    context.Context
	queue  *chanx.UnboundedChan[protocol.Event]
	cancel context.CancelFunc
}

// EventHub fans events out to per-session unbounded queues, so a slow
// client never blocks the simulator.
type EventHub struct {
	mu   sync.Mutex
	subs map[string]subscription
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string]subscription)}
}

// Subscribe registers id and returns its event stream. The stream is closed
// by Unsubscribe or when ctx is done.
func (h *EventHub) Subscribe(ctx context.Context, id string) <-chan protocol.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subs[id]; ok {
		close(old.queue.In)
		old.cancel()
	}

	subCtx, cancel := context.WithCancel(ctx)
	queue := chanx.NewUnboundedChan[protocol.Event](subCtx, eventQueueInitialCapacity)
	h.subs[id] = subscription{ctx: subCtx, queue: queue, cancel: cancel}

	return queue.Out
}

// Unsubscribe removes id and closes its stream.
func (h *EventHub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[id]
	if !ok {
		return
	}

	delete(h.subs, id)
	close(sub.queue.In)
	sub.cancel()
}

// Publish implements Publisher. It never blocks.
func (h *EventHub) Publish(event protocol.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	slog.Debug("Publishing event", "event", event.EventName(), "subscribers", len(h.subs))

	for id, sub := range h.subs {
		if sub.ctx.Err() != nil {
			slog.Debug("Skipping event for finished subscriber", "session", id)

			continue
		}

		sub.queue.In <- event
	}
}

// Subscribers returns the number of registered subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}
