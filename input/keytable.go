package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// actionNames maps config names to intents
var actionNames = map[string]IntentType{
	"quit":      IntentQuit,
	"rescatter": IntentRescatter,
	"mute":      IntentToggleMute,
}

// keyNames maps config names to special keys
var keyNames = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"ctrl+c": tcell.KeyCtrlC,
	"ctrl+q": tcell.KeyCtrlQ,
	"ctrl+r": tcell.KeyCtrlR,
	"f5":     tcell.KeyF5,
}

// KeyTable maps keys to intents
type KeyTable struct {
	Keys  map[tcell.Key]IntentType
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'r': IntentRescatter,
			'm': IntentToggleMute,
		},
	}
}

// Bind applies overrides of the form action -> key name
// A key is either a single character or one of the names in keyNames
func (kt *KeyTable) Bind(bindings map[string]string) error {
	for action, key := range bindings {
		intent, ok := actionNames[strings.ToLower(action)]
		if !ok {
			return fmt.Errorf("unknown action %q", action)
		}
		if k, ok := keyNames[strings.ToLower(key)]; ok {
			kt.Keys[k] = intent
			continue
		}
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("action %s: invalid key %q", action, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		kt.Runes[r] = intent
	}
	return nil
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}
