package events

import "testing"

type testEvent struct {
	typ   Type
	value int
}

func (e testEvent) EventType() Type { return e.typ }

func TestPublishFiltersByType(t *testing.T) {
	b := NewBus[testEvent]()
	var jumps, all int
	b.Subscribe(JumpStarted, func(testEvent) { jumps++ })
	b.SubscribeAll(func(testEvent) { all++ })

	b.Publish(testEvent{typ: JumpStarted})
	b.Publish(testEvent{typ: WireMissed})

	if jumps != 1 {
		t.Errorf("jumps = %d, expected 1", jumps)
	}
	if all != 2 {
		t.Errorf("all = %d, expected 2", all)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus[testEvent]()
	var secondCalls int
	var second ListenerID
	b.SubscribeAll(func(testEvent) { b.Unsubscribe(second) })
	second = b.SubscribeAll(func(testEvent) { secondCalls++ })

	// The snapshot taken at publish time still includes the second listener.
	b.Publish(testEvent{typ: JumpStarted})
	if secondCalls != 1 {
		t.Fatalf("secondCalls = %d, expected 1", secondCalls)
	}
	b.Publish(testEvent{typ: JumpStarted})
	if secondCalls != 1 {
		t.Errorf("unsubscribed listener still called, secondCalls = %d", secondCalls)
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	b := NewBus[testEvent]()
	late := 0
	b.SubscribeAll(func(testEvent) {
		if b.Len() == 1 {
			b.SubscribeAll(func(testEvent) { late++ })
		}
	})

	b.Publish(testEvent{typ: JumpStarted})
	if late != 0 {
		t.Fatal("listener added during dispatch ran in the same dispatch")
	}
	b.Publish(testEvent{typ: JumpStarted})
	if late != 1 {
		t.Errorf("late = %d, expected 1", late)
	}
}

func TestNestedPublish(t *testing.T) {
	b := NewBus[testEvent]()
	var order []int
	b.Subscribe(JumpStarted, func(e testEvent) {
		order = append(order, e.value)
		b.Publish(testEvent{typ: JumpFinished, value: 2})
	})
	b.Subscribe(JumpFinished, func(e testEvent) { order = append(order, e.value) })

	b.Publish(testEvent{typ: JumpStarted, value: 1})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, expected [1 2]", order)
	}
}

func TestTypeString(t *testing.T) {
	if WireMissed.String() != "wire_missed" {
		t.Errorf("WireMissed.String() = %q", WireMissed.String())
	}
	if Type(999).String() != "unknown" {
		t.Errorf("Type(999).String() = %q", Type(999).String())
	}
}
