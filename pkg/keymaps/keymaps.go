package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":        {"?", "show/hide commands"},
	"QuitApp":         {"q,ctrl+c", "quit"},
	"NextScreen":      {"tab", "next screen"},
	"PrevScreen":      {"shift+tab", "previous screen"},
	"Refresh":         {"r", "reload from server"},
	"ToggleTheme":     {"t", "toggle dark mode"},
	"CycleFilter":     {"f", "cycle status filter"},
	"SearchTasks":     {"/", "search tasks"},
	"AddTask":         {"a", "add task"},
	"EditTask":        {"e", "edit"},
	"DeleteTask":      {"d", "delete"},
	"CycleStatus":     {"space", "cycle status / toggle done"},
	"NewItem":         {"n", "new habit, reminder or event"},
	"ItemUp":          {"k", "previous item"},
	"ItemDown":        {"j", "next item"},
	"MoveTask":        {"m", "move task to another day"},
	"JumpToToday":     {"h", "jump to today"},
	"CalendarLeft":    {"left", "move left in calendar"},
	"CalendarRight":   {"right", "move right in calendar"},
	"CalendarUp":      {"up", "move up in calendar"},
	"CalendarDown":    {"down", "move down in calendar"},
	"CalendarSelect":  {"enter", "drop moved task on day"},
	"AssignDoFirst":   {"1", "assign to Do First"},
	"AssignSchedule":  {"2", "assign to Schedule"},
	"AssignDelegate":  {"3", "assign to Delegate"},
	"AssignEliminate": {"4", "assign to Eliminate"},
	"Unassign":        {"0", "remove from matrix"},
	"ToggleSortBy":    {"s", "cycle sort by"},
	"ToggleGroupBy":   {"g", "cycle group by"},
	"ToggleSortOrder": {"o", "toggle sort order"},
}

type KeyMap struct {
	ShowHelp        key.Binding
	QuitApp         key.Binding
	NextScreen      key.Binding
	PrevScreen      key.Binding
	Refresh         key.Binding
	ToggleTheme     key.Binding
	CycleFilter     key.Binding
	SearchTasks     key.Binding
	AddTask         key.Binding
	EditTask        key.Binding
	DeleteTask      key.Binding
	CycleStatus     key.Binding
	NewItem         key.Binding
	ItemUp          key.Binding
	ItemDown        key.Binding
	MoveTask        key.Binding
	JumpToToday     key.Binding
	CalendarLeft    key.Binding
	CalendarRight   key.Binding
	CalendarUp      key.Binding
	CalendarDown    key.Binding
	CalendarSelect  key.Binding
	AssignDoFirst   key.Binding
	AssignSchedule  key.Binding
	AssignDelegate  key.Binding
	AssignEliminate key.Binding
	Unassign        key.Binding
	ToggleSortBy    key.Binding
	ToggleGroupBy   key.Binding
	ToggleSortOrder key.Binding
}

// fields maps each action name to its binding
func (km *KeyMap) fields() map[string]*key.Binding {
	return map[string]*key.Binding{
		"ShowHelp":        &km.ShowHelp,
		"QuitApp":         &km.QuitApp,
		"NextScreen":      &km.NextScreen,
		"PrevScreen":      &km.PrevScreen,
		"Refresh":         &km.Refresh,
		"ToggleTheme":     &km.ToggleTheme,
		"CycleFilter":     &km.CycleFilter,
		"SearchTasks":     &km.SearchTasks,
		"AddTask":         &km.AddTask,
		"EditTask":        &km.EditTask,
		"DeleteTask":      &km.DeleteTask,
		"CycleStatus":     &km.CycleStatus,
		"NewItem":         &km.NewItem,
		"ItemUp":          &km.ItemUp,
		"ItemDown":        &km.ItemDown,
		"MoveTask":        &km.MoveTask,
		"JumpToToday":     &km.JumpToToday,
		"CalendarLeft":    &km.CalendarLeft,
		"CalendarRight":   &km.CalendarRight,
		"CalendarUp":      &km.CalendarUp,
		"CalendarDown":    &km.CalendarDown,
		"CalendarSelect":  &km.CalendarSelect,
		"AssignDoFirst":   &km.AssignDoFirst,
		"AssignSchedule":  &km.AssignSchedule,
		"AssignDelegate":  &km.AssignDelegate,
		"AssignEliminate": &km.AssignEliminate,
		"Unassign":        &km.Unassign,
		"ToggleSortBy":    &km.ToggleSortBy,
		"ToggleGroupBy":   &km.ToggleGroupBy,
		"ToggleSortOrder": &km.ToggleSortOrder,
	}
}

// BuildKeyMap applies user overrides on top of the defaults.
// Action names match case-insensitively since config keys arrive lowercased.
func BuildKeyMap(configOverrides map[string]string) KeyMap {
	overrides := make(map[string]string, len(configOverrides))
	for action, keys := range configOverrides {
		overrides[strings.ToLower(action)] = keys
	}

	km := KeyMap{}
	fields := km.fields()
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := overrides[strings.ToLower(action)]; exists && override != "" {
			keyStr = override
		}
		if field, ok := fields[action]; ok {
			*field = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}
	// The space bar reports itself as a literal blank
	for _, k := range keys {
		if k == "space" {
			keys = append(keys, " ")
			break
		}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
