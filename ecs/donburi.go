package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/spinview"
)

// ControlEventType is the Donburi event type for committed control changes.
// Events are queued on publish and delivered by ProcessEvents.
var ControlEventType = events.NewEventType[spinview.ControlEvent]()

// PanelState is the committed state of one control panel.
type PanelState struct {
	Panel   int
	Title   string
	Speed   float64
	Visible bool
	Commits int
}

// PanelStateComponent holds a PanelState on one entity per panel.
var PanelStateComponent = donburi.NewComponentType[PanelState]()

// DonburiSink is a spinview.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities []donburi.Entity
}

// NewDonburiSink creates one PanelState entity per panel, seeded from the
// panels' current values, and returns a sink that publishes events into
// world.
func NewDonburiSink(world donburi.World, panels []*spinview.ControlPanel) *DonburiSink {
	s := &DonburiSink{world: world}
	for i, p := range panels {
		e := world.Create(PanelStateComponent)
		PanelStateComponent.SetValue(world.Entry(e), PanelState{
			Panel:   i,
			Title:   p.Title,
			Speed:   p.Value(),
			Visible: p.Visible(),
		})
		s.entities = append(s.entities, e)
	}
	return s
}

// EmitEvent updates the panel's entity and queues the event.
func (s *DonburiSink) EmitEvent(event spinview.ControlEvent) {
	if st := s.State(event.Panel); st != nil {
		st.Speed = event.Speed
		st.Visible = event.Visible
		st.Commits++
	}
	ControlEventType.Publish(s.world, event)
}

// State returns the mirrored state for a panel, or nil if the panel has no
// entity.
func (s *DonburiSink) State(panel int) *PanelState {
	if panel < 0 || panel >= len(s.entities) {
		return nil
	}
	if !s.world.Valid(s.entities[panel]) {
		return nil
	}
	return PanelStateComponent.Get(s.world.Entry(s.entities[panel]))
}
