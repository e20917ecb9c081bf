package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logFile, err := cmd.NewStdoutLogger(configs)
	if err != nil {
		log.Fatalf("Invalid logger configuration: %v", err)
	}
	defer logFile.Close()

	app, err := cmd.NewCompositionRoot(context.Background(), configs, logger)
	if err != nil {
		log.Fatalf("Failed to start dispatch: %v", err)
	}
	defer app.Close()

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = startWebServer(ctx, app, configs.HTTPPort); err != nil {
		logger.Error("web server stopped", "error", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	server, err := app.Server()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
