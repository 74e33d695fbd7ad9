package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

func receiveEvent(t *testing.T, events <-chan protocol.Event) protocol.Event {
	t.Helper()

	select {
	case event, ok := <-events:
		require.True(t, ok, "event stream closed")

		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	return nil
}

func TestEventHub_PublishFansOut(t *testing.T) {
	// Arrange
	hub := NewEventHub()
	first := hub.Subscribe(context.Background(), "a")
	second := hub.Subscribe(context.Background(), "b")

	defer hub.Unsubscribe("a")
	defer hub.Unsubscribe("b")

	event := protocol.SimulationFinished{Time: m.NewTimeStamp(0, 500)}

	// Act
	hub.Publish(event)

	// Assert
	assert.Equal(t, 2, hub.Subscribers())
	assert.Equal(t, event, receiveEvent(t, first))
	assert.Equal(t, event, receiveEvent(t, second))
}

func TestEventHub_PublishNeverBlocks(t *testing.T) {
	hub := NewEventHub()
	events := hub.Subscribe(context.Background(), "slow")

	defer hub.Unsubscribe("slow")

	for i := range 1000 {
		hub.Publish(protocol.SimulationPaused{Time: m.NewTimeStamp(0, uint64(i)), Cause: protocol.CauseUntilTime})
	}

	for i := range 1000 {
		event := receiveEvent(t, events)
		assert.Equal(t, m.NewTimeStamp(0, uint64(i)), event.(protocol.SimulationPaused).Time)
	}
}

func TestEventHub_UnsubscribeClosesStream(t *testing.T) {
	hub := NewEventHub()
	events := hub.Subscribe(context.Background(), "a")

	hub.Unsubscribe("a")
	hub.Unsubscribe("a")

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("stream was not closed")
	}

	assert.Zero(t, hub.Subscribers())
}

func TestEventHub_CancelledSubscriberIsSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewEventHub()
	hub.Subscribe(ctx, "gone")
	live := hub.Subscribe(context.Background(), "live")

	defer hub.Unsubscribe("gone")
	defer hub.Unsubscribe("live")

	cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for range 100 {
			hub.Publish(protocol.SimulationFinished{})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publish blocked on a cancelled subscriber")
	}

	assert.Equal(t, protocol.SimulationFinished{}, receiveEvent(t, live))
}
