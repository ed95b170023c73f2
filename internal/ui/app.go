package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tudu/internal/storage"
	"tudu/internal/todo"
	"tudu/internal/ui/styles"
	"tudu/internal/ui/views"
)

// App is the root bubbletea model. It owns the active theme (restored
// from the persisted preference at startup, written back on every
// change) and delegates everything else to the todo list view.
type App struct {
	kv     storage.KV
	theme  styles.Theme
	list   *views.TodoListView
	width  int
	height int
}

// NewApp wires the view over the controller and restores the persisted
// theme preference, falling back to the default on an unknown name.
func NewApp(kv storage.KV, ctrl *todo.Controller) *App {
	theme := styles.TokyoNight
	if name, err := kv.Get(storage.KeyTheme); err == nil {
		if t, ok := styles.Lookup(name); ok {
			theme = t
		}
	}

	return &App{
		kv:    kv,
		theme: theme,
		list:  views.NewTodoListView(ctrl, styles.NewStyles(theme)),
	}
}

func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.CycleTheme:
		a.theme = styles.Next(a.theme.Name)
		a.kv.Set(storage.KeyTheme, a.theme.Name)
		a.list.SetStyles(styles.NewStyles(a.theme))
		return a, nil
	}

	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.list.View()
}
