package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/manganova/api/internal/config"
	"github.com/manganova/api/internal/container"
)

// buildTime is stamped via -ldflags at release time.
var buildTime = "unknown"

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	app := container.New(cfg, buildTime)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Initialize(ctx); err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}

	if err := app.Run(); err != nil {
		app.Logger().Error("Server error", slog.String("error", err.Error()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		app.Logger().Error("Shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app.Logger().Info("Server stopped gracefully")
}
