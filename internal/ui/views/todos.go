package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tudu/internal/format"
	"tudu/internal/models"
	"tudu/internal/todo"
	"tudu/internal/ui/keys"
	"tudu/internal/ui/styles"
)

// noticeTTL is how long a banner stays up before auto-dismissing
const noticeTTL = 3 * time.Second

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// CycleTheme asks the app to switch to the next theme
type CycleTheme struct{}

// noticeExpiredMsg dismisses the banner whose sequence number it
// carries; a newer banner keeps showing.
type noticeExpiredMsg struct {
	seq int
}

// TodoListView is the single main view: the task list plus the modal
// add/edit form, delete confirmations, and the help popup. It holds no
// task state of its own; everything it draws comes from the
// controller's render model, and every keypress maps to a controller
// intent.
type TodoListView struct {
	ctrl   *todo.Controller
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	rows    []todo.Row
	cursor  int
	scrollY int

	// Add/edit form
	editing      bool
	editingNew   bool
	taskInput    textinput.Model
	dueInput     textinput.Model
	descInput    textarea.Model
	formFocusIdx int // 0=task, 1=due date, 2=description, 3=save

	// Delete confirmations
	confirmingDelete    bool
	deleteTargetID      string
	confirmingDeleteAll bool

	// Notice banner
	notice    todo.Notice
	noticeSeq int

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTodoListView creates the main view over the given controller
func NewTodoListView(ctrl *todo.Controller, s *styles.Styles) *TodoListView {
	taskInput := textinput.New()
	taskInput.Placeholder = "What needs doing?"
	taskInput.CharLimit = 200

	dueInput := textinput.New()
	dueInput.Placeholder = "2026-12-31 (optional)"
	dueInput.CharLimit = 40

	descInput := textarea.New()
	descInput.Placeholder = "Description (optional)"
	descInput.CharLimit = 1000
	descInput.SetWidth(50)
	descInput.SetHeight(3)
	descInput.ShowLineNumbers = false

	return &TodoListView{
		ctrl:      ctrl,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		rows:      ctrl.Rows(),
		taskInput: taskInput,
		dueInput:  dueInput,
		descInput: descInput,
	}
}

// SetStyles swaps the style set after a theme change
func (v *TodoListView) SetStyles(s *styles.Styles) {
	v.styles = s
}

// Init initializes the view
func (v *TodoListView) Init() tea.Cmd {
	return nil
}

// refresh recomputes the render model and keeps the cursor in range
func (v *TodoListView) refresh() {
	v.rows = v.ctrl.Rows()
	if v.cursor >= len(v.rows) {
		v.cursor = max(0, len(v.rows)-1)
	}
	v.ensureVisible()
}

// setNotice shows a banner and schedules its dismissal. A new banner
// replaces the current one; the stale timer is ignored by sequence
// number.
func (v *TodoListView) setNotice(n todo.Notice) tea.Cmd {
	if n.Zero() {
		return nil
	}
	v.notice = n
	v.noticeSeq++
	seq := v.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update handles messages
func (v *TodoListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.descInput.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case noticeExpiredMsg:
		if msg.seq == v.noticeSeq {
			v.notice = todo.Notice{}
		}
		return v, nil

	case tea.KeyMsg:
		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.confirmingDeleteAll {
			return v.updateConfirmDeleteAll(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TodoListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if len(v.rows) == 0 {
			return v, nil
		}
		notice := v.ctrl.StartEdit(v.rows[v.cursor].ID)
		if task, ok := v.ctrl.EditingTask(); ok {
			v.startEditTask(task)
			return v, textinput.Blink
		}
		return v, v.setNotice(notice)

	case key.Matches(msg, v.keys.Toggle):
		if len(v.rows) == 0 {
			return v, nil
		}
		notice := v.ctrl.Toggle(v.rows[v.cursor].ID)
		v.refresh()
		return v, v.setNotice(notice)

	case key.Matches(msg, v.keys.Select):
		if len(v.rows) == 0 {
			return v, nil
		}
		row := v.rows[v.cursor]
		v.ctrl.Select(row.ID, !row.Selected)
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.SelectAll):
		v.ctrl.SelectAll(!v.allVisibleSelected())
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.ctrl.SetFilter(nextFilter(v.ctrl.Filter()))
		v.cursor = 0
		v.scrollY = 0
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(v.rows) == 0 {
			return v, nil
		}
		v.confirmingDelete = true
		v.deleteTargetID = v.rows[v.cursor].ID
		return v, nil

	case key.Matches(msg, v.keys.DeleteAll):
		v.confirmingDeleteAll = true
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if len(v.rows) == 0 {
			return v, nil
		}
		v.ctrl.ToggleExpanded(v.rows[v.cursor].ID)
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.Theme):
		return v, func() tea.Msg { return CycleTheme{} }

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TodoListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		notice := v.ctrl.Delete(v.deleteTargetID)
		v.deleteTargetID = ""
		v.refresh()
		return v, v.setNotice(notice)
	case "n", "N", "esc":
		v.confirmingDelete = false
		v.deleteTargetID = ""
		return v, nil
	}
	return v, nil
}

func (v *TodoListView) updateConfirmDeleteAll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDeleteAll = false
		notice := v.ctrl.DeleteSelectedOrAll()
		v.refresh()
		return v, v.setNotice(notice)
	case "n", "N", "esc":
		v.confirmingDeleteAll = false
		return v, nil
	}
	return v, nil
}

func (v *TodoListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeForm()
		return v, nil

	case msg.String() == "ctrl+s":
		return v.submitForm()

	case key.Matches(msg, v.keys.Tab):
		v.formFocusIdx = (v.formFocusIdx + 1) % 4
		v.updateFormFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.formFocusIdx = (v.formFocusIdx + 3) % 4
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter on the single-line inputs advances; on the save
		// button it submits. The textarea keeps enter for newlines.
		if v.formFocusIdx == 0 || v.formFocusIdx == 1 {
			v.formFocusIdx++
			v.updateFormFocus()
			return v, nil
		}
		if v.formFocusIdx == 3 {
			return v.submitForm()
		}
	}

	var cmd tea.Cmd
	switch v.formFocusIdx {
	case 0:
		v.taskInput, cmd = v.taskInput.Update(msg)
	case 1:
		v.dueInput, cmd = v.dueInput.Update(msg)
	case 2:
		v.descInput, cmd = v.descInput.Update(msg)
	}
	return v, cmd
}

func (v *TodoListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.formFocusIdx = 0
	v.taskInput.Reset()
	v.dueInput.Reset()
	v.descInput.Reset()
	v.updateFormFocus()
}

func (v *TodoListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.formFocusIdx = 0
	v.taskInput.SetValue(task.Task)
	if task.DueDate == format.NoDueDate {
		v.dueInput.Reset()
	} else {
		v.dueInput.SetValue(task.DueDate)
	}
	v.descInput.SetValue(task.Description)
	v.updateFormFocus()
}

// closeForm abandons the form without saving
func (v *TodoListView) closeForm() {
	v.editing = false
	v.ctrl.CancelEdit()
}

// submitForm routes the form contents to the right intent. Validation
// failures keep the form open so the input can be corrected.
func (v *TodoListView) submitForm() (tea.Model, tea.Cmd) {
	task := v.taskInput.Value()
	due := strings.TrimSpace(v.dueInput.Value())
	desc := v.descInput.Value()

	var notice todo.Notice
	if v.editingNew {
		notice = v.ctrl.Add(task, due, desc)
	} else {
		notice = v.ctrl.SaveEdit(task, due, desc)
	}

	if notice.Kind != todo.NoticeError {
		v.editing = false
		v.refresh()
	}
	return v, v.setNotice(notice)
}

func (v *TodoListView) updateFormFocus() {
	v.taskInput.Blur()
	v.dueInput.Blur()
	v.descInput.Blur()

	switch v.formFocusIdx {
	case 0:
		v.taskInput.Focus()
	case 1:
		v.dueInput.Focus()
	case 2:
		v.descInput.Focus()
	}
}

// allVisibleSelected reports whether every visible row is selected
func (v *TodoListView) allVisibleSelected() bool {
	if len(v.rows) == 0 {
		return false
	}
	for _, r := range v.rows {
		if !r.Selected {
			return false
		}
	}
	return true
}

func nextFilter(f models.Filter) models.Filter {
	switch f {
	case models.FilterAll:
		return models.FilterPending
	case models.FilterPending:
		return models.FilterCompleted
	default:
		return models.FilterAll
	}
}

func (v *TodoListView) ensureVisible() {
	// Each row is 1 line + 1 margin = 2 lines
	availableHeight := v.height - 10
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// View renders the view
func (v *TodoListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderConfirm("Delete Task?")
	}

	if v.confirmingDeleteAll {
		if v.ctrl.SelectionCount() > 0 {
			return v.renderConfirm(fmt.Sprintf("Delete %d Selected Tasks?", v.ctrl.SelectionCount()))
		}
		return v.renderConfirm("Delete ALL Tasks?")
	}

	if v.editing {
		return v.renderForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderList())
	b.WriteString("\n")
	b.WriteString(v.renderNotice())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TodoListView) renderHeader() string {
	s := v.styles

	title := s.Title.Render("tudu")

	var tabs []string
	for _, f := range []models.Filter{models.FilterAll, models.FilterPending, models.FilterCompleted} {
		style := s.TabInactive
		if f == v.ctrl.Filter() {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	filterBar := s.FilterBar.Render(lipgloss.JoinHorizontal(lipgloss.Center, tabs...))

	status := ""
	if n := v.ctrl.SelectionCount(); n > 0 {
		status = s.SelectMark.Render(fmt.Sprintf("%d selected", n))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", filterBar, "  ", status)
}

func (v *TodoListView) renderList() string {
	s := v.styles

	if len(v.rows) == 0 {
		if v.ctrl.TaskCount() == 0 {
			return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
		}
		return s.TitleMuted.Render("No task found")
	}

	availableHeight := v.height - 10
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := availableHeight / 2
	if visibleItems < 1 {
		visibleItems = 1
	}

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.rows))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderRow(v.rows[i], i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TodoListView) renderRow(row todo.Row, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	mark := " "
	if row.Selected {
		mark = s.SelectMark.Render("●")
	}

	label := row.Label
	if row.Expanded {
		label = row.FullText
	}
	if row.HasDescription && !row.Expanded {
		label += " +"
	}

	statusStyle := s.StatusOpen
	if row.Completed {
		statusStyle = s.StatusDone
	}

	line := fmt.Sprintf("%s %s %s  %s  %s",
		mark, check, label,
		s.DueDate.Render(row.DueDate),
		statusStyle.Render(row.StatusLabel),
	)
	if row.Editing {
		line += " " + s.TitleMuted.Render("(editing)")
	}

	lineStyle := s.ListItem
	if selected {
		lineStyle = s.ListSelected
	} else if row.Completed {
		lineStyle = s.ListDone
	}

	item := lineStyle.Width(width).Render(line)
	if row.Expanded && row.HasDescription {
		desc := s.Description.Width(width).PaddingLeft(6).Render(row.Description)
		item = lipgloss.JoinVertical(lipgloss.Left, item, desc)
	}
	return item + "\n"
}

func (v *TodoListView) renderNotice() string {
	if v.notice.Zero() {
		return ""
	}
	s := v.styles
	style := s.NoticeInfo
	switch v.notice.Kind {
	case todo.NoticeSuccess:
		style = s.NoticeSuccess
	case todo.NoticeError:
		style = s.NoticeError
	}
	return style.Padding(0, 2).Render(v.notice.Text) + "\n"
}

func (v *TodoListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	taskStyle := s.Input
	dueStyle := s.Input
	descStyle := s.Input
	btnStyle := s.Button

	switch v.formFocusIdx {
	case 0:
		taskStyle = s.InputFocused
	case 1:
		dueStyle = s.InputFocused
	case 2:
		descStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Task:",
		taskStyle.Width(inputWidth).Render(v.taskInput.View()),
		"",
		"Due date:",
		dueStyle.Width(inputWidth).Render(v.dueInput.View()),
		"",
		"Description:",
		descStyle.Render(v.descInput.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		v.renderNotice(),
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TodoListView) renderConfirm(question string) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(s.Theme.Error).Render(question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TodoListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s done • %s select • %s all • %s del • %s del sel/all • %s filter • %s theme • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("x"),
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("D"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("t"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TodoListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("c") + "      toggle done",
		s.HelpKey.Render("↵") + "      expand/collapse",
		s.HelpKey.Render("x") + "      select task",
		s.HelpKey.Render("a") + "      select all visible",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("D") + "      delete selected, or all",
		s.HelpKey.Render("f") + "      cycle filter",
		s.HelpKey.Render("t") + "      cycle theme",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
