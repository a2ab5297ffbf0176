// Package input turns tcell events into intents and keeps the pointer sample
// the session consumes every tick
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Avelinimus/PuzzleTemplate/engine"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Projector maps a terminal cell to world space
type Projector interface {
	ToWorld(col, row int) vmath.Vec2
}

// Machine is the input state machine
// It remembers the last pointer reading so a held button keeps reporting pressed
type Machine struct {
	keyTable *KeyTable
	proj     Projector
	sample   engine.Sample
}

// NewMachine creates a machine; kt may be nil for the default bindings
func NewMachine(kt *KeyTable, proj Projector) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt, proj: proj}
}

// SetProjector swaps the cell mapping after a resize
func (m *Machine) SetProjector(p Projector) {
	m.proj = p
}

// Sample is the pointer state to feed the next tick
func (m *Machine) Sample() engine.Sample {
	return m.sample
}

// Process parses a terminal event
// Returns nil for events that carry no intent
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t := m.keyTable.Lookup(ev); t != IntentNone {
			return &Intent{Type: t}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	col, row := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	next := engine.Sample{Pos: m.sample.Pos, Pressed: pressed}
	if m.proj != nil {
		next.Pos = m.proj.ToWorld(col, row)
	}
	if next == m.sample {
		return nil
	}
	m.sample = next
	return &Intent{Type: IntentPointer, Sample: next}
}
