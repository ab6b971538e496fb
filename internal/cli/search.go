package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/namax/internal/query"
	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
)

func newSearchCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog by substring and length",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLen, _ := cmd.Flags().GetInt("min")
			maxLen, _ := cmd.Flags().GetInt("max")
			if minLen < 0 || maxLen < 0 {
				return fmt.Errorf("--min and --max must not be negative")
			}

			c, err := catalog.NewLoader(o.cfg.CatalogFile).Load()
			if err != nil {
				return err
			}

			lo, hi := query.Bounds(minLen, maxLen)
			names := query.FilterByLength(query.Search(c.Corpus(), strings.Join(args, " ")), lo, hi)
			if names == nil {
				names = []string{}
			}

			return o.print(cmd.OutOrStdout(), names, func(w io.Writer) {
				for _, n := range names {
					fmt.Fprintln(w, n)
				}
			})
		},
	}
	cmd.Flags().Int("min", 0, "Minimum length (0 = no minimum)")
	cmd.Flags().Int("max", 0, "Maximum length (0 = no maximum)")
	return cmd
}
