package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the edit backend and editor defaults.

Settings are stored in ~/.kavach/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a setting",
	Long: `Set one setting by its dotted key.

Keys:
  backend.mode                  remote | local
  backend.base_url              Kavach PDF service API root
  backend.token                 access token (prompted when no value is given)
  backend.auth_scheme           raw | bearer
  backend.timeout_seconds       request timeout
  backend.requests_per_second   request rate limit
  backend.output_dir            output directory for local mode
  editor.font_size              default text size in points
  editor.color                  default text colour (#RRGGBB)
  editor.image_width            default image width in points
  editor.preserve_image_aspect  true | false`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode <remote|local>",
	Short: "Set the edit backend mode",
	Long: `Set where edits are applied.

Available modes:
  remote - Send documents to the Kavach PDF service (default)
  local  - Render edits on this machine into backend.output_dir`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsMode,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	b := settings.Backend
	cmd.Println("[Backend]")
	cmd.Printf("  Mode: %s\n", b.Mode.Description())
	if b.Mode == domain.BackendModeLocal {
		cmd.Printf("  Output Dir: %s\n", valueOrUnset(b.OutputDir))
	} else {
		cmd.Printf("  Base URL: %s\n", b.BaseURL)
		cmd.Printf("  Auth Scheme: %s\n", b.AuthScheme)
		if b.Token != "" {
			cmd.Printf("  Token: %s\n", maskToken(b.Token))
		} else {
			cmd.Printf("  Token: (not set)\n")
		}
		cmd.Printf("  Timeout: %s\n", b.Timeout)
		cmd.Printf("  Rate Limit: %g req/s\n", b.RequestsPerSecond)
	}
	status := "configured"
	if !b.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	e := settings.Editor
	cmd.Println("[Editor]")
	cmd.Printf("  Font Size: %g\n", e.FontSize)
	cmd.Printf("  Colour: %s\n", e.Color)
	cmd.Printf("  Image Width: %d\n", e.ImageWidth)
	cmd.Printf("  Preserve Image Aspect: %s\n", yesNo(e.PreserveImageAspect))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'kavach settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == "backend.token":
		cmd.Print("Enter token: ")
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == "backend.token" {
		cmd.Printf("Set %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	mode := domain.BackendMode(strings.ToLower(args[0]))
	if !mode.IsValid() {
		return fmt.Errorf("invalid mode %q (expected remote or local)", args[0])
	}

	if err := settingsService.SetBackendMode(mode); err != nil {
		return fmt.Errorf("failed to set backend mode: %w", err)
	}
	cmd.Printf("Set backend mode to: %s\n", mode.Description())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	// Try to read without echo
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
