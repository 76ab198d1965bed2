package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the last processed file",
	Long: `The last file processed by the edit backend is remembered between runs.
Use these commands to inspect, download or forget it.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last processed file",
	RunE:  runSessionShow,
}

var sessionDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the last processed file",
	RunE:  runSessionDownload,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the last processed file",
	RunE:  runSessionClear,
}

func init() {
	sessionDownloadCmd.Flags().StringP("out", "o", "", "Output path (default: the processed file name)")
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDownloadCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionShow(cmd *cobra.Command, _ []string) error {
	if editorService == nil {
		return errors.New("editor service not configured")
	}

	result, err := editorService.LastResult(cmd.Context())
	if errors.Is(err, domain.ErrNoResult) {
		cmd.Println("No processed file.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	cmd.Printf("File: %s\n", result.FileName)
	cmd.Printf("Original: %s\n", valueOrUnset(result.OriginalName))
	return nil
}

func runSessionDownload(cmd *cobra.Command, _ []string) error {
	if editorService == nil {
		return errors.New("editor service not configured")
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		result, err := editorService.LastResult(cmd.Context())
		if errors.Is(err, domain.ErrNoResult) {
			return errors.New("no processed file; save a document first")
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		outPath = result.FileName
	}

	if err := downloadTo(cmd.Context(), outPath); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", outPath)
	return nil
}

func runSessionClear(cmd *cobra.Command, _ []string) error {
	if editorService == nil {
		return errors.New("editor service not configured")
	}

	if err := editorService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	cmd.Println("Session cleared.")
	return nil
}
