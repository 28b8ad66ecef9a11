package core

import "gonum.org/v1/gonum/spatial/r3"

// PacketState is the lifecycle state of a data packet.
type PacketState int

const (
	PacketInactive PacketState = iota
	PacketFloating
	PacketSeeking
)

func (s PacketState) String() string {
	switch s {
	case PacketFloating:
		return "floating"
	case PacketSeeking:
		return "seeking"
	default:
		return "inactive"
	}
}

// DataPacket is a pooled bonus pickup. It floats along the wire axis until
// it expires or is collected; a collected packet homes in on the player
// before awarding.
type DataPacket struct {
	id       int
	state    PacketState
	position r3.Vec
	speed    float64
	age      float64
	lifetime float64

	seekFrom r3.Vec
	seekTime float64
	target   *Jumper

	collect func(*DataPacket, *Jumper)
}

func newDataPacket(id int, collect func(*DataPacket, *Jumper)) *DataPacket {
	return &DataPacket{id: id, collect: collect}
}

func (p *DataPacket) activate(pos r3.Vec, speed, lifetime float64) {
	p.state = PacketFloating
	p.position = pos
	p.speed = speed
	p.age = 0
	p.lifetime = lifetime
	p.seekTime = 0
	p.target = nil
}

func (p *DataPacket) deactivate() {
	p.state = PacketInactive
	p.target = nil
}

func (p *DataPacket) ID() int            { return p.id }
func (p *DataPacket) State() PacketState { return p.state }
func (p *DataPacket) Position() r3.Vec   { return p.position }
func (p *DataPacket) Speed() float64     { return p.speed }
func (p *DataPacket) Age() float64       { return p.age }
func (p *DataPacket) Lifetime() float64  { return p.lifetime }

// CanInteract implements Interactable.
func (p *DataPacket) CanInteract(j *Jumper) bool {
	return p.state == PacketFloating && j != nil
}

// OnInteract implements Interactable: collects the packet.
func (p *DataPacket) OnInteract(j *Jumper) {
	if p.collect != nil {
		p.collect(p, j)
	}
}
