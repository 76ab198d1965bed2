package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/messages"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/styles"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/views/editor"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// editorView is the page editing view.
	editorView *editor.View

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		editorView: editor.NewView(s, nil, ports.Editor),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.editorView.WithContext(ctx)
	return a
}

// WithDocument sets the PDF to open. Without one the app shows the last
// processed file.
func (a *App) WithDocument(path string) *App {
	a.editorView.WithDocument(path)
	return a
}

// WithDownloadDir sets where processed files are downloaded.
func (a *App) WithDownloadDir(dir string) *App {
	a.editorView.WithDownloadDir(dir)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("kavach - PDF Editor"),
		a.checkSettings(),
		a.editorView.Init(),
	)
}

// checkSettings reports settings the backend cannot work with.
func (a *App) checkSettings() tea.Cmd {
	settings := a.ports.Settings
	if settings == nil {
		return nil
	}
	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("settings: %w", err)}
		}
		return nil
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	a.editorView, cmd = a.editorView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.editorView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Mode returns the editor view mode.
func (a *App) Mode() messages.Mode {
	return a.editorView.Mode()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
