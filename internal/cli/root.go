// Package cli implements the namax command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/namax/internal/app"
	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/config"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// options holds the persistent flags and what PersistentPreRunE built from
// them.
type options struct {
	client string
	format string
	store  string

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "namax",
		Short:         "Name generator with favorites, history and a debounced filter bar",
		Long:          "namax serves the name generator API and manages stored favorites and history from the shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}

	root.PersistentFlags().StringVarP(&o.client, "client", "c", "local", "Client scope to read and write")
	root.PersistentFlags().StringVarP(&o.format, "format", "f", formatText, "Output format: json or text")
	root.PersistentFlags().StringVar(&o.store, "store", "", "Override NAMAX_STORE (memory, sqlite, redis)")

	root.AddCommand(
		newServeCmd(o),
		newFavoritesCmd(o),
		newHistoryCmd(o),
		newSearchCmd(o),
		newGenerateCmd(o),
		newVersionCmd(),
	)
	return root
}

func (o *options) load() error {
	if o.format != formatJSON && o.format != formatText {
		return fmt.Errorf("unknown format %q, want json or text", o.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.store != "" {
		cfg.Store = strings.ToLower(strings.TrimSpace(o.store))
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	o.cfg = cfg
	o.log = logger.New(cfg.LogLevel, cfg.PrettyLog)
	return nil
}

// withCollections opens the backend, hands the client's store to fn and
// closes the backend afterwards.
func (o *options) withCollections(cmd *cobra.Command, fn func(*collection.Store) error) error {
	if strings.TrimSpace(o.client) == "" {
		return fmt.Errorf("--client must not be empty")
	}

	backend, err := app.OpenBackend(cmd.Context(), o.cfg, o.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			o.log.Warn("failed to close store", logger.Error(err))
		}
	}()

	return fn(collection.NewProvider(backend.KV, o.log).For(o.client))
}

// print writes v as indented JSON, or calls text for the text format.
func (o *options) print(w io.Writer, v any, text func(io.Writer)) error {
	if o.format == formatJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	text(w)
	return nil
}
