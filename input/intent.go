package input

import "github.com/Avelinimus/PuzzleTemplate/engine"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit       // q, Esc, Ctrl+C
	IntentRescatter  // r
	IntentToggleMute // m
	IntentResize     // terminal resize
	IntentPointer    // mouse moved, pressed or released
)

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentRescatter:
		return "rescatter"
	case IntentToggleMute:
		return "mute"
	case IntentResize:
		return "resize"
	case IntentPointer:
		return "pointer"
	}
	return "none"
}

// Intent is the parsed form of one terminal event
type Intent struct {
	Type   IntentType
	Sample engine.Sample // valid for IntentPointer
}
