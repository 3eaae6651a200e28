package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/api"
	"tickit/pkg/config"
	"tickit/pkg/keymaps"
	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// Gateway is the slice of the backend client the screens talk to
type Gateway interface {
	Fetch(ctx context.Context, filter tasks.StatusFilter) ([]tasks.Task, tasks.Source, error)
	ListTasks(ctx context.Context) ([]tasks.Task, error)
	ListCompletedTasks(ctx context.Context) ([]tasks.Task, error)
	CreateTask(ctx context.Context, t tasks.Task) error
	UpdateTask(ctx context.Context, t tasks.Task) error
	SetTaskStatus(ctx context.Context, t tasks.Task, status tasks.Status) error
	MoveTask(ctx context.Context, t tasks.Task, day time.Time) error
	DeleteTask(ctx context.Context, id int64) error

	ListHabits(ctx context.Context) ([]api.Habit, error)
	CreateHabit(ctx context.Context, title string) error
	UpdateHabit(ctx context.Context, h api.Habit) error
	ToggleHabit(ctx context.Context, h api.Habit) error
	DeleteHabit(ctx context.Context, id int64) error

	ListReminders(ctx context.Context) ([]api.Reminder, error)
	CreateReminder(ctx context.Context, r api.Reminder) error
	ToggleReminder(ctx context.Context, r api.Reminder) error
	DeleteReminder(ctx context.Context, id int64) error
}

// ThemeSource is the shared dark-mode preference
type ThemeSource interface {
	Get() bool
	Toggle() (bool, error)
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode   // Mode for searching tasks
	PromptMode   // single-line input for habits, reminders and events
	HelpViewMode // Mode for displaying help
)

// Screen is one of the top-level views
type Screen int

const (
	TasksScreen Screen = iota
	CalendarScreen
	DashboardScreen
	HabitsScreen
	MatrixScreen
)

var screenTitles = []string{"Tasks", "Calendar", "Dashboard", "Daily Planner", "Eisenhower Matrix"}

func (s Screen) String() string {
	if int(s) < len(screenTitles) {
		return screenTitles[s]
	}
	return "Unknown"
}

// Form field indexes
const (
	fieldName = iota
	fieldDescription
	fieldDueDate
	fieldDueTime
	fieldPriority
	fieldStatus
	fieldCount
)

// Model represents the application state
type Model struct {
	gateway Gateway
	state   tasks.KV
	theme   ThemeSource
	themeCh chan bool
	unsub   func()
	now     func() time.Time

	table          table.Model
	spinner        spinner.Model
	screen         Screen
	width, height  int
	loading        int
	notice         string
	err            error
	sessionExpired bool

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap
	dark   bool

	// Tasks screen
	view  *tasks.ViewModel
	items []tasks.Task // rows of the table, in display order; zero ID marks a group header

	// Overview data shared by calendar, dashboard and matrix
	allTasks  []tasks.Task
	completed []tasks.Task
	reminders []api.Reminder
	habits    []api.Habit
	events    []tasks.CalendarEvent
	matrix    tasks.Matrix
	cursor    int // item cursor of the non-table screens

	// Form state
	mode        InputMode
	inputs      []textinput.Model
	priority    int
	status      int
	activeInput int
	formErr     string
	searchInput textinput.Model
	promptInput textinput.Model
	prompt      promptKind

	// Edit/delete state
	editingItem *tasks.Task
	pending     pendingDelete

	// Sorting and grouping state
	sortBy    SortBy
	groupBy   GroupBy
	sortOrder SortOrder

	calendarMonth       time.Time
	calendarSelectedDay int // Selected day in calendar view (1-31)
	moving              *tasks.Task
}

// NewModel creates a new UI model with the provided configuration
func NewModel(gw Gateway, state tasks.KV, themes ThemeSource, cfg config.Config, styles config.Styles) Model {
	columns := []table.Column{
		{Title: "Status", Width: 12},
		{Title: "Task", Width: 36},
		{Title: "Priority", Width: 9},
		{Title: "Due", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	inputs := make([]textinput.Model, fieldPriority)
	placeholders := []string{
		"Task name (at least 3 characters)",
		"Description (at least 5 characters)",
		"Due date (YYYY-MM-DD)",
		"Due time (HH:MM)",
	}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].Width = 40
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search title or description"
	searchInput.Width = 40

	promptInput := textinput.New()
	promptInput.Width = 50

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	now := time.Now()
	m := Model{
		gateway:             gw,
		state:               state,
		theme:               themes,
		themeCh:             make(chan bool, 4),
		now:                 time.Now,
		table:               t,
		spinner:             sp,
		config:              cfg,
		styles:              styles,
		keyMap:              keymaps.BuildKeyMap(cfg.KeyMap),
		view:                tasks.NewViewModel(),
		mode:                NormalMode,
		inputs:              inputs,
		searchInput:         searchInput,
		promptInput:         promptInput,
		calendarMonth:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		calendarSelectedDay: now.Day(),
	}

	if themes != nil {
		m.dark = themes.Get()
		ch := m.themeCh
		m.unsub = themes.Subscribe(func(dark bool) {
			select {
			case ch <- dark:
			default:
			}
		})
	}
	m.applyTheme()
	if gw != nil {
		m.loading = 1 // the fetch started by Init
	}

	if state != nil {
		if events, err := tasks.LoadEvents(state); err != nil {
			utils.LogError("load calendar events", err)
		} else {
			m.events = events
		}
		if matrix, err := tasks.LoadMatrix(state); err != nil {
			utils.LogError("load matrix", err)
		} else {
			m.matrix = matrix
		}
	}

	return m
}

// Init starts the first load of the tasks screen
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchScreen(), waitForTheme(m.themeCh))
}

// Close releases the theme subscription
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) palette() config.Palette {
	return m.styles.Palette(m.dark)
}

// applyTheme restyles the table for the current palette
func (m *Model) applyTheme() {
	p := m.palette()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(p.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(p.SelectedTextColor)).
		Background(lipgloss.Color(p.SelectedBgColor)).
		Bold(true)
	m.table.SetStyles(s)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentColor))
}

// resetInputs clears all form inputs and loads a draft into them
func (m *Model) resetInputs(d tasks.Draft) {
	values := []string{d.Name, d.Description, d.DueDate, d.DueTime}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.priority = indexOf(priorityChoices(), d.Priority, 1)
	m.status = indexOf(statusChoices(), d.Status, 1)
	m.activeInput = fieldName
	m.formErr = ""
	m.inputs[fieldName].Focus()
}

// draft reads the form back into raw input
func (m Model) draft() tasks.Draft {
	d := tasks.Draft{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		DueDate:     m.inputs[fieldDueDate].Value(),
		DueTime:     m.inputs[fieldDueTime].Value(),
		Priority:    priorityChoices()[m.priority],
		Status:      statusChoices()[m.status],
	}
	if m.editingItem != nil {
		d.ID = m.editingItem.ID
	}
	return d
}

func priorityChoices() []string {
	out := make([]string, len(tasks.Priorities))
	for i, p := range tasks.Priorities {
		out[i] = string(p)
	}
	return out
}

func statusChoices() []string {
	out := make([]string, len(tasks.Statuses))
	for i, s := range tasks.Statuses {
		out[i] = string(s)
	}
	return out
}

func indexOf(choices []string, value string, fallback int) int {
	for i, c := range choices {
		if c == value {
			return i
		}
	}
	return fallback
}
