package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go-tripplanner/internal/api"
	"go-tripplanner/internal/archive"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/llm"
	"go-tripplanner/pkg/logger"
	stdLog "log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:           "tripplanner-api",
		Short:         "HTTP api for the travel planning crew",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("TRIPPLANNER_CONFIG"), "yaml or toml config file")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stdLog.Printf("tripplanner-api: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.NewGlobal(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm: %w", err)
	}
	c := crew.New(cfg, client)

	var store api.Archive
	if cfg.Archive.Enabled {
		s, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	system := actor.NewActorSystem().Root
	app := api.New(system, c, store, cfg.Server)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(app.Start)
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down gracefully")

		sCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return app.Stop(sCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("server exiting")
	return nil
}
