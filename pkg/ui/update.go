package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewHabit
	promptRenameHabit
	promptNewReminder
	promptNewEvent
)

type deleteKind int

const (
	deleteNothing deleteKind = iota
	deleteTask
	deleteHabit
	deleteReminder
	deleteEvent
)

// pendingDelete is the item waiting for a y/N answer
type pendingDelete struct {
	kind    deleteKind
	id      int64
	eventID string
	title   string
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case themeChangedMsg:
		m.dark = msg.dark
		m.applyTheme()
		return m, waitForTheme(m.themeCh)

	case tasksLoadedMsg:
		m.doneLoading()
		m.view.SetTasks(msg.tasks, msg.source)
		m.refreshTable()
		return m, nil

	case overviewLoadedMsg:
		m.doneLoading()
		m.allTasks = msg.all
		m.completed = msg.completed
		m.reminders = msg.reminders
		m.matrix.Prune(msg.all)
		m.saveMatrix()
		return m, nil

	case habitsLoadedMsg:
		m.doneLoading()
		m.habits = msg.habits
		m.clampCursor(len(m.habits))
		return m, nil

	case loadFailedMsg:
		m.doneLoading()
		switch msg.screen {
		case TasksScreen:
			m.view.SetTasks(nil, tasks.SourceFor(m.view.Filter))
			m.refreshTable()
		case HabitsScreen:
			m.habits = nil
		default:
			m.allTasks, m.completed, m.reminders = nil, nil, nil
		}
		m.showError(msg.err, "Failed to fetch data. Please try again later.")
		return m, nil

	case doneMsg:
		m.doneLoading()
		m.err = nil
		m.notice = msg.notice
		utils.Log("%s", msg.notice)
		if msg.reload {
			return m, m.loadScreen()
		}
		return m, nil

	case errMsg:
		m.doneLoading()
		m.showError(msg.err, msg.fallback)
		return m, nil
	}

	return m, nil
}

func (m *Model) doneLoading() {
	if m.loading > 0 {
		m.loading--
	}
}

// showError turns a gateway error into the status line; the raw error only goes to the log
func (m *Model) showError(err error, fallback string) {
	utils.LogError(fallback, err)
	m.notice = ""
	m.err = errors.New(api.UserMessage(err, fallback))
	if errors.Is(err, api.ErrUnauthenticated) {
		m.sessionExpired = true
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case AddMode, EditMode:
		return m.handleFormKey(msg)
	case SearchMode:
		return m.handleSearchKey(msg)
	case PromptMode:
		return m.handlePromptKey(msg)
	case DeleteConfirmMode:
		return m.handleDeleteKey(msg)
	case HelpViewMode:
		switch {
		case msg.String() == "esc", key.Matches(msg, m.keyMap.ShowHelp):
			m.mode = NormalMode
		case key.Matches(msg, m.keyMap.QuitApp):
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode
		return nil

	case key.Matches(msg, m.keyMap.NextScreen):
		return m.switchScreen((m.screen + 1) % Screen(len(screenTitles)))

	case key.Matches(msg, m.keyMap.PrevScreen):
		return m.switchScreen((m.screen + Screen(len(screenTitles)) - 1) % Screen(len(screenTitles)))

	case key.Matches(msg, m.keyMap.Refresh):
		m.notice = ""
		m.err = nil
		return m.loadScreen()

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.toggleTheme()
	}

	switch m.screen {
	case TasksScreen:
		return m.handleTasksKey(msg)
	case CalendarScreen:
		return m.handleCalendarKey(msg)
	case DashboardScreen:
		return m.handleDashboardKey(msg)
	case HabitsScreen:
		return m.handleHabitsKey(msg)
	case MatrixScreen:
		return m.handleMatrixKey(msg)
	}
	return nil
}

func (m *Model) switchScreen(s Screen) tea.Cmd {
	m.screen = s
	m.cursor = 0
	m.moving = nil
	m.notice = ""
	m.err = nil
	return m.loadScreen()
}

func (m *Model) toggleTheme() tea.Cmd {
	if m.theme == nil {
		m.dark = !m.dark
		m.applyTheme()
		return nil
	}
	// The new value comes back through the subscription
	if _, err := m.theme.Toggle(); err != nil {
		m.showError(err, "Failed to save theme preference.")
	}
	return nil
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keyMap.AddTask):
		m.mode = AddMode
		m.editingItem = nil
		d := tasks.NewDraft()
		d.DueDate = m.now().Format(tasks.DateLayout)
		m.resetInputs(d)
		return nil

	case key.Matches(msg, m.keyMap.EditTask):
		if t, ok := m.selectedTask(); ok {
			m.mode = EditMode
			m.editingItem = &t
			m.resetInputs(tasks.DraftFromTask(t))
		}
		return nil

	case key.Matches(msg, m.keyMap.DeleteTask):
		if t, ok := m.selectedTask(); ok {
			m.confirmDelete(pendingDelete{kind: deleteTask, id: t.ID, title: t.Title})
		}
		return nil

	case key.Matches(msg, m.keyMap.CycleStatus):
		if t, ok := m.selectedTask(); ok {
			return m.setTaskStatus(t, tasks.NextStatus(t.Status))
		}
		return nil

	case key.Matches(msg, m.keyMap.CycleFilter):
		m.view.Filter = m.view.Filter.Next()
		utils.Log("Filter changed to %s", m.view.Filter)
		return m.loadScreen()

	case key.Matches(msg, m.keyMap.SearchTasks):
		m.mode = SearchMode
		m.searchInput.SetValue(m.view.Query)
		m.searchInput.Focus()
		return nil

	case key.Matches(msg, m.keyMap.ToggleSortBy):
		m.sortBy = (m.sortBy + 1) % sortByCount
		m.refreshTable()
		return nil

	case key.Matches(msg, m.keyMap.ToggleGroupBy):
		m.groupBy = (m.groupBy + 1) % groupByCount
		m.refreshTable()
		return nil

	case key.Matches(msg, m.keyMap.ToggleSortOrder):
		if m.sortOrder == SortAsc {
			m.sortOrder = SortDesc
		} else {
			m.sortOrder = SortAsc
		}
		m.refreshTable()
		return nil

	case msg.String() == "esc" && m.view.Query != "":
		m.view.Query = ""
		m.refreshTable()
		return nil
	}

	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.editingItem = nil
		m.formErr = ""
		return nil

	case "tab", "down":
		m.focusInput(m.activeInput + 1)
		return nil

	case "shift+tab", "up":
		m.focusInput(m.activeInput - 1)
		return nil

	case "enter":
		if m.activeInput == fieldCount-1 {
			return m.submitForm()
		}
		m.focusInput(m.activeInput + 1)
		return nil

	case "left", "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		switch m.activeInput {
		case fieldPriority:
			m.priority = (m.priority + step + len(tasks.Priorities)) % len(tasks.Priorities)
			return nil
		case fieldStatus:
			m.status = (m.status + step + len(tasks.Statuses)) % len(tasks.Statuses)
			return nil
		}
	}

	if m.activeInput < len(m.inputs) {
		m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
	}
	return cmd
}

// focusInput moves the form focus, wrapping at both ends
func (m *Model) focusInput(i int) {
	m.activeInput = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.activeInput {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// submitForm validates the form locally; nothing is sent while a rule fails
func (m *Model) submitForm() tea.Cmd {
	t, err := tasks.ParseDraft(m.draft())
	if err != nil {
		m.formErr = api.UserMessage(err, "Please check the form.")
		return nil
	}

	editing := m.mode == EditMode
	m.mode = NormalMode
	m.editingItem = nil
	m.formErr = ""

	if editing {
		utils.Log("Updating task %d", t.ID)
		return m.updateTask(t)
	}
	utils.Log("Adding task %q", t.Title)
	return m.createTask(t)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.searchInput.Blur()
		m.view.Query = ""
		m.refreshTable()
		return nil

	case "enter":
		m.mode = NormalMode
		m.searchInput.Blur()
		m.view.Query = strings.TrimSpace(m.searchInput.Value())
		utils.Log("Searching for: %s", m.view.Query)
		m.refreshTable()
		return nil
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

// openPrompt switches to the single-line input used for habits, reminders and events
func (m *Model) openPrompt(kind promptKind, placeholder, value string) {
	m.mode = PromptMode
	m.prompt = kind
	m.formErr = ""
	m.promptInput.Placeholder = placeholder
	m.promptInput.SetValue(value)
	m.promptInput.CursorEnd()
	m.promptInput.Focus()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.closePrompt()
		return nil

	case "enter":
		return m.submitPrompt(m.promptInput.Value())
	}

	m.promptInput, cmd = m.promptInput.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.mode = NormalMode
	m.prompt = promptNone
	m.formErr = ""
	m.promptInput.Blur()
}

func (m *Model) submitPrompt(value string) tea.Cmd {
	switch m.prompt {
	case promptNewHabit:
		if strings.TrimSpace(value) == "" {
			m.formErr = "Please enter a habit before adding."
			return nil
		}
		m.closePrompt()
		return m.createHabit(value)

	case promptRenameHabit:
		h, ok := m.selectedHabit()
		if !ok || strings.TrimSpace(value) == "" {
			m.formErr = "Please enter a habit before adding."
			return nil
		}
		h.Title = strings.TrimSpace(value)
		m.closePrompt()
		return m.renameHabit(h)

	case promptNewReminder:
		r, err := parseReminderInput(value, m.now())
		if err == nil {
			err = api.ValidateReminder(r, m.now())
		}
		if err != nil {
			m.formErr = api.UserMessage(err, "Invalid reminder.")
			return nil
		}
		m.closePrompt()
		return m.createReminder(r)

	case promptNewEvent:
		if err := m.addEvent(value); err != nil {
			m.formErr = api.UserMessage(err, "Failed to save event.")
			return nil
		}
		m.closePrompt()
		return nil
	}

	m.closePrompt()
	return nil
}

func (m *Model) confirmDelete(p pendingDelete) {
	m.pending = p
	m.mode = DeleteConfirmMode
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		p := m.pending
		m.pending = pendingDelete{}
		m.mode = NormalMode
		utils.Log("Deleting %q", p.title)

		switch p.kind {
		case deleteTask:
			return m.deleteTask(p.id)
		case deleteHabit:
			return m.deleteHabit(p.id)
		case deleteReminder:
			return m.deleteReminder(p.id)
		case deleteEvent:
			m.removeEvent(p.eventID)
		}

	case "n", "N", "esc":
		m.pending = pendingDelete{}
		m.mode = NormalMode
	}
	return nil
}
