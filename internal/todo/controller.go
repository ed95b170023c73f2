package todo

import (
	"strings"

	"tudu/internal/format"
	"tudu/internal/models"
)

// NoticeKind classifies a transient banner message
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
	NoticeInfo
)

// Notice is a transient user-facing message produced by an intent
// handler. The zero value means there is nothing to show.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Zero reports whether the notice carries no message
func (n Notice) Zero() bool {
	return n.Kind == NoticeNone
}

// Row is one entry of the render model the view layer draws from
type Row struct {
	ID             string
	Label          string // truncated task text for the compact list
	FullText       string
	DueDate        string
	StatusLabel    string
	Description    string
	Completed      bool
	Editing        bool
	Selected       bool
	Expanded       bool
	HasDescription bool
}

// Controller holds the transient UI state (active filter, edit slot,
// bulk selection, expanded rows) and reconciles it against the Store.
// All validation happens here, before the store is touched; the store
// assumes clean input.
//
// There is a single global edit slot: at most one task is being edited
// at a time, and any store mutation that removes its target also
// releases the slot. Selected and expanded ids are pruned on every
// removal so they never reference a vanished task.
type Controller struct {
	store     *Store
	filter    models.Filter
	editingID string
	selected  map[string]struct{}
	expanded  map[string]struct{}
}

// NewController creates a controller over the given store with the
// default filter and an empty selection.
func NewController(store *Store) *Controller {
	return &Controller{
		store:    store,
		filter:   models.FilterAll,
		selected: make(map[string]struct{}),
		expanded: make(map[string]struct{}),
	}
}

// Filter returns the active filter criterion
func (c *Controller) Filter() models.Filter {
	return c.filter
}

// Editing reports whether a task is currently being edited
func (c *Controller) Editing() bool {
	return c.editingID != ""
}

// EditingTask returns the task occupying the edit slot, if any
func (c *Controller) EditingTask() (models.Task, bool) {
	if c.editingID == "" {
		return models.Task{}, false
	}
	return c.store.Get(c.editingID)
}

// SelectionCount returns the number of tasks marked for bulk deletion
func (c *Controller) SelectionCount() int {
	return len(c.selected)
}

// TaskCount returns the total number of tasks in the store
func (c *Controller) TaskCount() int {
	return c.store.Len()
}

// Rows derives the render model: the visible tasks under the active
// filter, each paired with its per-row display strings and flags.
func (c *Controller) Rows() []Row {
	tasks := c.store.Filter(c.filter)
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		_, selected := c.selected[t.ID]
		_, expanded := c.expanded[t.ID]
		rows[i] = Row{
			ID:             t.ID,
			Label:          format.TaskLabel(t.Task),
			FullText:       t.Task,
			DueDate:        format.DueDate(t.DueDate),
			StatusLabel:    format.StatusLabel(t.Completed),
			Description:    t.Description,
			Completed:      t.Completed,
			Editing:        t.ID == c.editingID,
			Selected:       selected,
			Expanded:       expanded,
			HasDescription: t.Description != "",
		}
	}
	return rows
}

// Add creates a new task from the form input. Empty task text and
// out-of-range due-date years are rejected before the store is
// touched.
func (c *Controller) Add(text, dueDate, description string) Notice {
	text = strings.TrimSpace(text)
	if n := validate(text, dueDate); !n.Zero() {
		return n
	}
	if _, err := c.store.Create(text, dueDate, strings.TrimSpace(description)); err != nil {
		return saveFailed(err)
	}
	return Notice{NoticeSuccess, "Task added successfully!"}
}

// StartEdit moves the edit slot to the given task. Completed tasks are
// not editable, and a second edit cannot start while one is in flight.
func (c *Controller) StartEdit(id string) Notice {
	if c.editingID == id {
		return Notice{}
	}
	if c.editingID != "" {
		return Notice{NoticeInfo, "Finish the current edit first."}
	}
	task, ok := c.store.Get(id)
	if !ok {
		return Notice{}
	}
	if task.Completed {
		return Notice{NoticeInfo, "Completed tasks cannot be edited."}
	}
	c.editingID = id
	return Notice{}
}

// SaveEdit applies the form input to the task in the edit slot and
// releases the slot. Validation failures keep the slot occupied so the
// user can correct the input; a vanished edit target saves nothing and
// releases the slot silently.
func (c *Controller) SaveEdit(text, dueDate, description string) Notice {
	if c.editingID == "" {
		return Notice{}
	}
	text = strings.TrimSpace(text)
	if n := validate(text, dueDate); !n.Zero() {
		return n
	}
	id := c.editingID
	c.editingID = ""
	_, ok, err := c.store.Update(id, text, dueDate, strings.TrimSpace(description))
	if err != nil {
		return saveFailed(err)
	}
	if !ok {
		return Notice{}
	}
	return Notice{NoticeSuccess, "Task updated successfully!"}
}

// CancelEdit releases the edit slot without touching the store
func (c *Controller) CancelEdit() {
	c.editingID = ""
}

// Toggle flips the completion state of a task. A vanished id is a
// silent no-op.
func (c *Controller) Toggle(id string) Notice {
	if err := c.store.Toggle(id); err != nil {
		return saveFailed(err)
	}
	return Notice{}
}

// Delete removes a single task. Deleting the task currently being
// edited also releases the edit slot.
func (c *Controller) Delete(id string) Notice {
	if err := c.store.Delete(id); err != nil {
		return saveFailed(err)
	}
	c.forget(id)
	return Notice{NoticeSuccess, "Task deleted successfully!"}
}

// DeleteSelectedOrAll is the overloaded delete action: with a
// non-empty selection it deletes exactly the selected tasks and clears
// the selection; with an empty selection it clears the entire store,
// regardless of the active filter.
func (c *Controller) DeleteSelectedOrAll() Notice {
	if len(c.selected) > 0 {
		ids := make([]string, 0, len(c.selected))
		for id := range c.selected {
			ids = append(ids, id)
		}
		if err := c.store.DeleteMany(ids); err != nil {
			return saveFailed(err)
		}
		for _, id := range ids {
			c.forget(id)
		}
		return Notice{NoticeSuccess, "Selected tasks deleted successfully!"}
	}

	if c.store.Len() == 0 {
		return Notice{NoticeInfo, "No tasks to clear."}
	}
	if err := c.store.ClearAll(); err != nil {
		return saveFailed(err)
	}
	c.editingID = ""
	c.selected = make(map[string]struct{})
	c.expanded = make(map[string]struct{})
	return Notice{NoticeSuccess, "All tasks cleared successfully!"}
}

// SetFilter switches the visible subset. Switching filters implicitly
// cancels an in-progress edit so the edit target can never be hidden
// behind a filter.
func (c *Controller) SetFilter(criterion models.Filter) {
	c.filter = criterion
	c.editingID = ""
}

// Select marks or unmarks a single task for bulk deletion. Only ids
// currently present in the store can enter the selection.
func (c *Controller) Select(id string, on bool) {
	if !on {
		delete(c.selected, id)
		return
	}
	if _, ok := c.store.Get(id); ok {
		c.selected[id] = struct{}{}
	}
}

// SelectAll sets the selection to exactly the currently visible rows,
// or clears it entirely.
func (c *Controller) SelectAll(on bool) {
	c.selected = make(map[string]struct{})
	if !on {
		return
	}
	for _, t := range c.store.Filter(c.filter) {
		c.selected[t.ID] = struct{}{}
	}
}

// ToggleExpanded flips the expand/collapse state of a row's full text
// and description.
func (c *Controller) ToggleExpanded(id string) {
	if _, ok := c.expanded[id]; ok {
		delete(c.expanded, id)
		return
	}
	if _, ok := c.store.Get(id); ok {
		c.expanded[id] = struct{}{}
	}
}

// forget drops every transient reference to a removed task
func (c *Controller) forget(id string) {
	delete(c.selected, id)
	delete(c.expanded, id)
	if c.editingID == id {
		c.editingID = ""
	}
}

// validate applies the shared create/update input checks
func validate(text, dueDate string) Notice {
	if text == "" {
		return Notice{NoticeError, "Please enter a task."}
	}
	if !dueYearValid(dueDate) {
		return Notice{NoticeError, "Due date year cannot exceed 4 digits."}
	}
	return Notice{}
}

// dueYearValid checks the leading year component of a due date: more
// than four leading digits means a year past 9999. Values with no
// leading digits pass through untouched.
func dueYearValid(dueDate string) bool {
	digits := 0
	for _, r := range dueDate {
		if r < '0' || r > '9' {
			break
		}
		digits++
	}
	return digits <= 4
}

func saveFailed(err error) Notice {
	return Notice{NoticeError, "Could not save tasks: " + err.Error()}
}
