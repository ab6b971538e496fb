package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/domain"
)

func newHistoryCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect generated names",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List generated names, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return o.withCollections(cmd, func(s *collection.Store) error {
				hist := s.ListHistory(cmd.Context())
				if limit > 0 && len(hist) > limit {
					hist = hist[:limit]
				}
				return o.print(cmd.OutOrStdout(), hist, func(w io.Writer) {
					printHistory(w, hist)
				})
			})
		},
	}
	list.Flags().IntP("limit", "l", 50, "Max entries (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every generated name (favorites are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withCollections(cmd, func(s *collection.Store) error {
				if err := s.ClearHistory(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return err
			})
		},
	}

	cmd.AddCommand(list, clearCmd)
	return cmd
}

func printHistory(w io.Writer, hist []domain.HistoryEntry) {
	if len(hist) == 0 {
		fmt.Fprintln(w, "no history")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tGENERATED")
	for _, h := range hist {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Name, h.Type, formatMillis(h.Timestamp))
	}
	_ = tw.Flush()
}
