package cli

import (
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"go-tripplanner/internal/archive"
	"time"
)

var errArchiveDisabled = errors.New("plan archive is disabled")

func (a *app) historyCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "no archived plans")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%s  %s  %-8s %2dd  %s\n", e.ID, e.GeneratedAt.Local().Format(time.DateTime), e.Mode, e.Duration, e.Destination)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of plans to list")
	cmd.AddCommand(a.showCommand())
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			export, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), export)
			}
			return writeSections(cmd.OutOrStdout(), exportViews(export), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "text, markdown or json")
	return cmd
}

func (a *app) openArchive() (*archive.Store, error) {
	store, err := a.archive()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errArchiveDisabled
	}
	return store, nil
}
