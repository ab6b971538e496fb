package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/domain"
)

func newFavoritesCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite names",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withCollections(cmd, func(s *collection.Store) error {
				favs := s.ListFavorites(cmd.Context())
				return o.print(cmd.OutOrStdout(), favs, func(w io.Writer) {
					printFavorites(w, favs)
				})
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a favorite (case-insensitive duplicates are ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, _ := cmd.Flags().GetString("type")
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("name must not be blank")
			}
			return o.withCollections(cmd, func(s *collection.Store) error {
				if err := s.AddToFavorites(cmd.Context(), name, typ); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "favorited %s\n", name)
				return err
			})
		},
	}
	add.Flags().StringP("type", "t", domain.TypeRandom, "Generator type tag")

	rm := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a favorite",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			return o.withCollections(cmd, func(s *collection.Store) error {
				if err := s.RemoveFromFavorites(cmd.Context(), name); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", name)
				return err
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withCollections(cmd, func(s *collection.Store) error {
				if err := s.ClearFavorites(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "favorites cleared")
				return err
			})
		},
	}

	cmd.AddCommand(list, add, rm, clearCmd)
	return cmd
}

func printFavorites(w io.Writer, favs []domain.FavoriteEntry) {
	if len(favs) == 0 {
		fmt.Fprintln(w, "no favorites")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tADDED")
	for _, f := range favs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Type, formatMillis(f.Timestamp))
	}
	_ = tw.Flush()
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
