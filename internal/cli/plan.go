package cli

import (
	"context"
	"fmt"
	"github.com/charmbracelet/huh/spinner"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/plan"
	"go-tripplanner/internal/results"
	"go-tripplanner/internal/tasks"
	"go-tripplanner/pkg/models"
	"io"
	"time"
)

func (a *app) planCommand() *cobra.Command {
	f := &requestFlags{}
	var interactive bool
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a travel plan",
		Long: `Generate a travel plan with the agent crew.

Modes:
  basic    six core tasks, no live data
  full     every available task, live data when search keys are configured
  mystery  a surprise destination and the story of the trip
  custom   tasks picked from the interests and travel style

Examples:
  tripctl plan --destination Japan --duration 7 --budget '$3000' --interests food,museums
  tripctl plan --mode mystery --destination Peru --duration 5 --budget '$1500'
  tripctl plan -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interactive {
				if err := f.prompt(); err != nil {
					return err
				}
			}
			mode, err := plan.ParseMode(f.mode)
			if err != nil {
				return err
			}
			c, err := a.crew()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			progress := cmd.ErrOrStderr()
			hooks := crew.Hooks{
				OnStart: func(i int, t tasks.Task) {
					if !interactive {
						fmt.Fprintf(progress, "[%d] %s (%s)\n", i+1, t.Name, t.Role.Name())
					}
				},
			}

			result, err := a.run(cmd.Context(), interactive, func(ctx context.Context) (*models.PlanResult, error) {
				return c.Run(ctx, f.req, mode, hooks)
			})
			if err != nil {
				return err
			}

			export, _ := results.Export(uuid.NewString(), f.req.Normalized(), result, time.Now())
			a.save(cmd.Context(), progress, export)

			if format == formatJSON {
				return writeJSON(out, export)
			}
			return writeSections(out, results.MapResult(result, results.SectionsFor(mode)), format)
		},
	}
	f.bind(cmd.Flags(), true)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the trip preferences")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "text, markdown or json")
	return cmd
}

func (a *app) taskCommand() *cobra.Command {
	f := &requestFlags{}
	var format string

	cmd := &cobra.Command{
		Use:   "task <name>",
		Short: "Run a single planning task",
		Long: `Run one task on its own, e.g. visa_requirements or weather.

Task names may be given with or without their suffix:
  tripctl task weather --destination Iceland --season winter --duration 5 --budget '$2500'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := tasks.ParseKind(args[0])
			if err != nil {
				return err
			}
			c, err := a.crew()
			if err != nil {
				return err
			}

			result, err := a.run(cmd.Context(), false, func(ctx context.Context) (*models.PlanResult, error) {
				return c.RunTask(ctx, f.req, kind)
			})
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			out := result.Outputs[0]
			return writeSections(cmd.OutOrStdout(), []models.SectionView{{Key: out.Kind, Title: out.Name, Content: out.Raw, TaskName: out.Name, Ready: true}}, format)
		},
	}
	f.bind(cmd.Flags(), false)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "text, markdown or json")
	return cmd
}

// run executes fn, behind a spinner when the session is interactive.
func (a *app) run(ctx context.Context, interactive bool, fn func(ctx context.Context) (*models.PlanResult, error)) (*models.PlanResult, error) {
	var result *models.PlanResult
	var runErr error
	action := func() { result, runErr = fn(ctx) }

	if interactive && isInteractive() {
		if err := spinner.New().Title("Your travel crew is working...").Context(ctx).Action(action).Run(); err != nil {
			return nil, err
		}
	} else {
		action()
	}
	return result, runErr
}

func (a *app) save(ctx context.Context, w io.Writer, export models.PlanExport) {
	store, err := a.archive()
	if err != nil {
		log.Warn().Err(err).Msg("plan archive unavailable")
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	id, err := store.Save(ctx, export)
	if err != nil {
		log.Warn().Err(err).Msg("unable to archive plan")
		return
	}
	fmt.Fprintf(w, "saved plan %s\n", id)
}
