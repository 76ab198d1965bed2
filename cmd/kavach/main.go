// Command kavach places text, signature and image annotations on PDF pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/devkavach22/kavach-edit/internal/adapters/driven/backend/remote"
	"github.com/devkavach22/kavach-edit/internal/adapters/driven/config/file"
	"github.com/devkavach22/kavach-edit/internal/adapters/driven/imagefile"
	"github.com/devkavach22/kavach-edit/internal/adapters/driven/pdf"
	"github.com/devkavach22/kavach-edit/internal/adapters/driven/storage/sqlite"
	"github.com/devkavach22/kavach-edit/internal/adapters/driving/cli"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/core/services"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close session store: %v", err)
		}
	}()

	editorService := services.NewEditorService(
		newBackend(settings.Backend),
		store.SessionCache(),
		pdf.NewGeometryReader(),
		imagefile.NewLoader(),
		uuid.NewString,
		services.PlacementDefaultsFrom(settings.Editor),
	)

	cli.SetVersion(version)
	cli.SetEditorService(editorService)
	cli.SetPlanService(services.NewPlanService(editorService, file.NewPlanStore()))
	cli.SetSettingsService(settingsService)

	return cli.ExecuteContext(ctx)
}

// newBackend picks the edit backend for the configured mode.
func newBackend(s domain.BackendSettings) driven.EditBackend {
	if s.Mode == domain.BackendModeLocal {
		logger.Debug("using local renderer in %s", s.OutputDir)
		return pdf.NewRenderer(s.OutputDir)
	}
	logger.Debug("using edit service at %s", s.BaseURL)
	return remote.NewBackend(remote.ConfigFrom(s))
}
