package core

import (
	"github.com/vovakirdan/wires/internal/events"
)

// Event is published on the simulation bus. Only the fields relevant to
// Type are set.
type Event struct {
	Type       events.Type
	Spark      *Spark
	Wire       *Wire
	Packet     *DataPacket
	Stage      int
	Multiplier int
	Lives      int
	Drifting   bool
	Collected  bool
	Boosting   bool
	Forced     bool
	Reason     string
}

// EventType implements events.Event.
func (e Event) EventType() events.Type { return e.Type }

// Bus is the simulation event bus.
type Bus = events.Bus[Event]
