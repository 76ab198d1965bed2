package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui"
)

// editCmd launches the interactive editor.
var editCmd = &cobra.Command{
	Use:   "edit [file.pdf]",
	Short: "Edit a PDF in the interactive terminal UI",
	Long: `Open a PDF in the interactive editor and place text, signature and image
annotations on its pages.

Without a file the last processed result is shown so it can be downloaded.

Controls:
  ←↑↓→/hjkl  Move the cursor
  ]/[        Next / previous page
  t, s, i    Arm the text, signature or image tool
  Enter      Place / select
  e, c       Edit content / colour
  x          Delete the selected annotation
  Ctrl+S     Save
  ?          Toggle help
  q          Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringP("out", "o", ".", "Directory for downloaded results")
	rootCmd.AddCommand(editCmd)
}

// newEditApp builds the editor app for the given arguments.
func newEditApp(cmd *cobra.Command, args []string) (*tui.App, error) {
	if editorService == nil {
		return nil, errors.New("editor service not configured")
	}

	app, err := tui.NewApp(tui.NewPorts(editorService, settingsService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	outDir, _ := cmd.Flags().GetString("out")
	app.WithContext(cmd.Context()).WithDownloadDir(outDir)
	if len(args) == 1 {
		app.WithDocument(args[0])
	}
	return app, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newEditApp(cmd, args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
