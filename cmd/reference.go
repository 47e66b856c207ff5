package cmd

import (
	"fmt"
	"strings"

	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

func newReferenceCmd() *cobra.Command {
	referenceCmd := &cobra.Command{
		Use:   "reference",
		Short: "Show or extend the team and category lists",
	}

	referenceCmd.AddCommand(newReferenceListCmd("teams",
		func(s *tracker.Store) []string { return s.Teams() },
		func(s *tracker.Store, name string) { s.AddTeam(name) }))
	referenceCmd.AddCommand(newReferenceListCmd("categories",
		func(s *tracker.Store) []string { return s.Categories() },
		func(s *tracker.Store, name string) { s.AddCategory(name) }))

	return referenceCmd
}

func newReferenceListCmd(use string, list func(*tracker.Store) []string, add func(*tracker.Store, string)) *cobra.Command {
	var names []string

	c := &cobra.Command{
		Use:   use,
		Short: "List " + use + ", or add new ones with --add",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := tracker.FromContext(cmd.Context())
			for _, name := range names {
				if name = strings.TrimSpace(name); name != "" {
					add(store, name)
				}
			}
			for _, name := range list(store) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	c.Flags().StringSliceVar(&names, "add", nil, "names to append for this session")
	return c
}
