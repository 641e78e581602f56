package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []Event
	dispatcher.Subscribe(EventBookingSubmitted, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventBookingSubmitted, EntityID: "booking-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "booking-1", got[0].EntityID)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventBookingSubmitted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventComplaintFiled}))
	require.False(t, called)
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []int
	dispatcher.Subscribe(EventWarningIssued, func(context.Context, Event) error {
		order = append(order, 1)
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventWarningIssued, func(context.Context, Event) error {
		order = append(order, 2)
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventWarningIssued}))
	require.Equal(t, []int{1, 2}, order)
}
