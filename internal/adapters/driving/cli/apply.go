package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

var applyCmd = &cobra.Command{
	Use:   "apply <file.pdf>",
	Short: "Apply a placement plan to a PDF",
	Long: `Place every annotation of a TOML plan on a PDF, save it through the edit
backend and optionally download the result.

Plan format:
  [[annotation]]
  kind = "text"        # text | signature | image
  page = 1             # 1-based
  x = 50.0             # percent from the left edge
  y = 10.0             # percent from the top edge
  content = "Approved"
  font_size = 14
  color = "#cc0000"

  [[annotation]]
  kind = "image"
  page = 2
  x = 70
  y = 85
  image = "signature.png"   # relative to the plan file

Examples:
  kavach apply contract.pdf --plan sign.toml --out signed.pdf
  kavach apply contract.pdf --plan sign.toml --out signed.pdf --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("plan", "p", "", "Placement plan (TOML)")
	applyCmd.Flags().StringP("out", "o", "", "Write the edited PDF to this path")
	applyCmd.Flags().BoolP("watch", "w", false, "Re-apply whenever the plan changes")
	_ = applyCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if editorService == nil || planService == nil {
		return errors.New("editor service not configured")
	}

	planPath, _ := cmd.Flags().GetString("plan")
	outPath, _ := cmd.Flags().GetString("out")
	watch, _ := cmd.Flags().GetBool("watch")

	ctx := cmd.Context()
	if err := applyOnce(ctx, cmd, args[0], planPath, outPath); err != nil {
		if !watch {
			return err
		}
		cmd.PrintErrf("Error: %v\n", err)
	}

	if !watch {
		return nil
	}
	return watchPlan(ctx, cmd, args[0], planPath, outPath)
}

// applyOnce runs one open, apply, save and download cycle.
func applyOnce(ctx context.Context, cmd *cobra.Command, pdfPath, planPath, outPath string) error {
	doc, err := editorService.Open(ctx, pdfPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", pdfPath, err)
	}

	created, err := planService.Apply(ctx, planPath)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	cmd.Printf("Placed %d annotation(s) on %s (%d pages)\n", len(created), doc.Name, doc.PageCount)

	result, err := editorService.Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	cmd.Printf("Saved as %s\n", result.FileName)

	if outPath == "" {
		return nil
	}
	if err := downloadTo(ctx, outPath); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", outPath)
	return nil
}

// watchPlan re-applies the plan on every change until ctx is cancelled.
// The directory is watched so editors that replace the file are followed.
func watchPlan(ctx context.Context, cmd *cobra.Command, pdfPath, planPath, outPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	absPlan, err := filepath.Abs(planPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPlan)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", planPath, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", planPath)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPlan {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("plan event: %s", event)
			debounce = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-debounce:
			debounce = nil
			if _, err := os.Stat(absPlan); err != nil {
				continue
			}
			if err := applyOnce(ctx, cmd, pdfPath, planPath, outPath); err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}
		}
	}
}

// downloadTo writes the last result to path, removing a partial file on
// failure.
func downloadTo(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	_, err = editorService.Download(ctx, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, domain.ErrNoResult) {
			return errors.New("no processed file; save a document first")
		}
		return fmt.Errorf("failed to download: %w", err)
	}
	return nil
}
