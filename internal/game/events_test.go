package game

import "testing"

func TestEventBusSubscribePublish(t *testing.T) {
	bus := NewEventBus()
	a := &testEventSubscriber{}
	b := &testEventSubscriber{}

	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Publish(NewNotificationEvent("hello"))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("Expected both subscribers to receive the event, got %d/%d", len(a.events), len(b.events))
	}
	if a.events[0].EventType() != EventTypeNotification {
		t.Errorf("Expected notification event, got %s", a.events[0].EventType())
	}
	if a.events[0].Timestamp().IsZero() {
		t.Error("Event timestamp should be set")
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &testEventSubscriber{}
	b := &testEventSubscriber{}

	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Unsubscribe(a)
	bus.Publish(NewSoundEvent(SoundTriggerSurvived))

	if len(a.events) != 0 {
		t.Errorf("Unsubscribed subscriber received %d events", len(a.events))
	}
	if len(b.events) != 1 {
		t.Errorf("Remaining subscriber expected 1 event, got %d", len(b.events))
	}
}
