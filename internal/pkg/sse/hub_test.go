package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(7)
	defer cleanup()

	hub.Publish(7, Event{Event: "notification", Data: "hello"})

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHubPublishIsScopedToRecipient(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(7)
	defer cleanup()

	hub.Publish(8, Event{Event: "notification"})

	assert.Empty(t, ch)
}

func TestHubCleanupRemovesConnection(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(7)
	_, cleanup2 := hub.Subscribe(7)
	require.Equal(t, 2, hub.SubscriberCount(7))

	cleanup()
	assert.Equal(t, 1, hub.SubscriberCount(7))

	cleanup2()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	// Publishing to a recipient with no connections must not panic.
	hub.Publish(7, Event{Event: "notification"})
}

func TestHubFullBufferDoesNotBlockPublisher(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(7)
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish(7, Event{Event: "notification", Data: i})
	}

	assert.Equal(t, cap(ch), len(ch))
}
