// Package cli provides the kavach command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/devkavach22/kavach-edit/internal/core/ports/driving"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services used by commands. Set by main before Execute.
var (
	editorService   driving.EditorService
	planService     driving.PlanService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "kavach",
	Short: "Place text, signatures and images on PDF pages",
	Long: `Kavach edits PDF documents by placing text, signature and image
annotations on their pages and sending the result to the Kavach PDF service.

Annotations are placed interactively with 'kavach edit' or from a TOML plan
with 'kavach apply'. The last processed file is remembered between runs.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetEditorService sets the editor service used by commands.
func SetEditorService(s driving.EditorService) {
	editorService = s
}

// SetPlanService sets the plan service used by apply.
func SetPlanService(s driving.PlanService) {
	planService = s
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
