package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/generator"
	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
)

func newGenerateCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "generate <type>",
		Aliases:   []string{"gen"},
		Short:     "Generate a batch of names and record it in history",
		Long:      "Generate a batch of names. Types: " + strings.Join(generator.Types(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: generator.Types(),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := args[0]
			if !slices.Contains(generator.Types(), typ) {
				return fmt.Errorf("%w: %q", generator.ErrUnknownType, typ)
			}

			criteria := map[string]any{}
			if v, _ := cmd.Flags().GetString("keyword"); v != "" {
				criteria[generator.CriteriaKeyword] = v
			}
			if v, _ := cmd.Flags().GetString("gender"); v != "" {
				criteria[generator.CriteriaGender] = v
			}
			if cmd.Flags().Changed("min") {
				v, _ := cmd.Flags().GetInt("min")
				criteria[generator.CriteriaMinLength] = v
			}
			if cmd.Flags().Changed("max") {
				v, _ := cmd.Flags().GetInt("max")
				criteria[generator.CriteriaMaxLength] = v
			}

			c, err := catalog.NewLoader(o.cfg.CatalogFile).Load()
			if err != nil {
				return err
			}
			gen := generator.New(func() *catalog.Catalog { return c })

			return o.withCollections(cmd, func(s *collection.Store) error {
				res, err := gen.Generate(cmd.Context(), s, typ, criteria)
				if err != nil && (!errors.Is(err, collection.ErrWriteFailed) || res.Type == "") {
					return err
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: batch not saved to history: %v\n", err)
				}
				return o.print(cmd.OutOrStdout(), res, func(w io.Writer) {
					if len(res.Names) == 0 {
						fmt.Fprintln(w, "no names match")
						return
					}
					for _, n := range res.Names {
						fmt.Fprintln(w, n)
					}
				})
			})
		},
	}
	cmd.Flags().StringP("keyword", "k", "", "Keyword for the keyword panel")
	cmd.Flags().StringP("gender", "g", "", "male, female or any for the personal panel")
	cmd.Flags().Int("min", generator.DefaultKeywordMin, "Minimum keyword-name length")
	cmd.Flags().Int("max", generator.DefaultKeywordMax, "Maximum keyword-name length")
	return cmd
}
