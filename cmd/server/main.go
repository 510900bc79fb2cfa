package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devskillshub/internal/app"
	"devskillshub/internal/config"
	"devskillshub/internal/database/seeder"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if err := run(ctx, logger); err != nil {
		stop()
		log.Fatalf("server: %v", err)
	}
}

// run returns instead of exiting so deferred cleanup always closes storage connections.
func run(ctx context.Context, logger *log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap app: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	go bootstrap.Container.Hub.Run(ctx)

	if cfg.SeedFile != "" {
		if err := seed(ctx, cfg, bootstrap.Container.SkillUC, logger); err != nil {
			return err
		}
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
		return nil
	}
}

func seed(ctx context.Context, cfg config.Config, target seeder.Target, logger *log.Logger) error {
	items, err := seeder.LoadFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	r := seeder.Runner{Seeders: []seeder.Seeder{seeder.SkillsSeeder{
		Items:           items,
		Logger:          logger,
		ReplaceDegraded: cfg.SeedReplaceDegraded,
	}}}
	if err := r.Run(ctx, target); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	return nil
}
