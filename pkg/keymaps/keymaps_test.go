package keymaps

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestEveryActionIsBound(t *testing.T) {
	km := BuildKeyMap(nil)
	fields := km.fields()
	assert.Len(t, fields, len(KeyDefinitions))
	for action := range KeyDefinitions {
		field, ok := fields[action]
		if assert.True(t, ok, action) {
			assert.NotEmpty(t, field.Keys(), action)
		}
	}
}

func TestOverridesIgnoreCase(t *testing.T) {
	km := BuildKeyMap(map[string]string{"refresh": "ctrl+r, F5"})
	assert.Equal(t, []string{"ctrl+r", "F5"}, km.Refresh.Keys())
	assert.Equal(t, "ctrl+r", km.Refresh.Help().Key)
}

func TestSpaceMatchesBlank(t *testing.T) {
	km := BuildKeyMap(nil)
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	assert.True(t, key.Matches(msg, km.CycleStatus))
}

func TestDefaultMappingsRoundTrip(t *testing.T) {
	defaults := GetDefaultKeyMappings()
	assert.Equal(t, "tab", defaults["NextScreen"])
	assert.Equal(t, BuildKeyMap(defaults).QuitApp.Keys(), BuildKeyMap(nil).QuitApp.Keys())
}
