package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// gridProjector maps each cell to a 10x20 world box
type gridProjector struct{}

func (gridProjector) ToWorld(col, row int) vmath.Vec2 {
	return vmath.V2(float64(col)*10+5, float64(row)*20+10)
}

// TestProcessKeys verifies default bindings
func TestProcessKeys(t *testing.T) {
	m := NewMachine(nil, gridProjector{})

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want IntentType
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit},
		{"esc quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{"ctrl+c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit},
		{"r rescatters", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), IntentRescatter},
		{"m mutes", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentToggleMute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := m.Process(tt.ev)
			require.NotNil(t, intent)
			assert.Equal(t, tt.want, intent.Type)
		})
	}

	assert.Nil(t, m.Process(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

// TestProcessMouse verifies press, drag and release produce pointer samples
func TestProcessMouse(t *testing.T) {
	m := NewMachine(nil, gridProjector{})

	intent := m.Process(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	require.NotNil(t, intent)
	assert.Equal(t, IntentPointer, intent.Type)
	assert.True(t, intent.Sample.Pressed)
	assert.Equal(t, vmath.V2(35, 50), intent.Sample.Pos)

	// Duplicate reports are swallowed
	assert.Nil(t, m.Process(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone)))

	intent = m.Process(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	require.NotNil(t, intent)
	assert.Equal(t, vmath.V2(45, 50), intent.Sample.Pos)

	intent = m.Process(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone))
	require.NotNil(t, intent)
	assert.False(t, intent.Sample.Pressed)
	assert.Equal(t, intent.Sample, m.Sample())
}

func TestProcessResize(t *testing.T) {
	m := NewMachine(nil, nil)
	intent := m.Process(tcell.NewEventResize(80, 24))
	require.NotNil(t, intent)
	assert.Equal(t, IntentResize, intent.Type)
}

func TestBindOverrides(t *testing.T) {
	kt := DefaultKeyTable()
	require.NoError(t, kt.Bind(map[string]string{"rescatter": "s", "quit": "F5"}))
	assert.Equal(t, IntentRescatter, kt.Runes['s'])
	assert.Equal(t, IntentQuit, kt.Keys[tcell.KeyF5])

	assert.Error(t, kt.Bind(map[string]string{"jump": "j"}))
	assert.Error(t, kt.Bind(map[string]string{"quit": "qq"}))
}
