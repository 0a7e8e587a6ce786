package cli

import (
	"fmt"
	"github.com/spf13/cobra"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/plan"
	"go-tripplanner/internal/services"
	"strings"
)

func (a *app) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the planning modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range plan.Modes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", m.Mode, m.Description)
			}
			return nil
		},
	}
}

func (a *app) summaryCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary <mode>",
		Short: "Show the tasks a mode would run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := plan.ParseMode(args[0])
			if err != nil {
				return err
			}
			_, err = services.New(a.cfg.Services)
			s, err := plan.Summarize(mode, err == nil)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s: %s", s.Mode, s.Description)))
			if !s.Variable {
				fmt.Fprintf(w, "agents: %d\n", s.Agents)
			}
			fmt.Fprintf(w, "uses live data: %t\n", s.APIDependent)
			for i, t := range s.EstimatedTasks {
				fmt.Fprintf(w, "%2d. %s\n", i+1, t)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "text or json")
	return cmd
}

func (a *app) validateCommand() *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check trip preferences without planning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := f.req.Normalized().Validate()
			w := cmd.OutOrStdout()
			for _, e := range v.Errors {
				fmt.Fprintln(w, errorStyle.Render("error: ")+e)
			}
			for _, warn := range v.Warnings {
				fmt.Fprintln(w, "warning: "+warn)
			}
			if !v.Valid {
				return fmt.Errorf("%w: %s", crew.ErrInvalidRequest, strings.Join(v.Errors, "; "))
			}
			fmt.Fprintln(w, "ok")
			return nil
		},
	}
	f.bind(cmd.Flags(), false)
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the crew and the services it can reach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.crew()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), c.Status())
		},
	}
}
