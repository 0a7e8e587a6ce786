package cli

import (
	"fmt"
	"github.com/spf13/cobra"
	"go-tripplanner/internal/archive"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/llm"
	"go-tripplanner/pkg/logger"
	"os"
)

// Factory builds the crew once the configuration is known.
type Factory func(cfg config.Config) (*crew.Crew, error)

// DefaultFactory connects the configured model and search services.
func DefaultFactory(cfg config.Config) (*crew.Crew, error) {
	client, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm: %w", err)
	}
	return crew.New(cfg, client), nil
}

type app struct {
	configPath string
	noArchive  bool
	factory    Factory
	cfg        config.Config
	c          *crew.Crew
}

func NewRootCommand(factory Factory) *cobra.Command {
	a := &app{factory: factory}
	cmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "Plan trips with a crew of travel agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return logger.NewGlobal(cfg.Log.Level, cfg.Log.Pretty)
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("TRIPPLANNER_CONFIG"), "yaml or toml config file")
	cmd.PersistentFlags().BoolVar(&a.noArchive, "no-archive", false, "do not read or write the plan archive")

	cmd.AddCommand(
		a.planCommand(),
		a.taskCommand(),
		a.modesCommand(),
		a.summaryCommand(),
		a.validateCommand(),
		a.statusCommand(),
		a.historyCommand(),
	)
	return cmd
}

func (a *app) crew() (*crew.Crew, error) {
	if a.c != nil {
		return a.c, nil
	}
	c, err := a.factory(a.cfg)
	if err != nil {
		return nil, err
	}
	a.c = c
	return c, nil
}

// archive opens the plan store, or returns nil when it is disabled.
func (a *app) archive() (*archive.Store, error) {
	if a.noArchive || !a.cfg.Archive.Enabled {
		return nil, nil
	}
	return archive.Open(a.cfg.Archive.Path)
}
