package main

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"elementhub/internal/elements"
	"elementhub/internal/filter"
	"elementhub/internal/render"
	"elementhub/pkg/logger"
	"elementhub/pkg/utils"
)

type rootOptions struct {
	configPath string
	dbPath     string
	catalog    string
	jsonOut    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "elementhub",
		Short: "Browse the periodic table from the terminal",
		Long: `elementhub renders the periodic table, filters it by category, state,
period and block, and shows element details.

Examples:
  elementhub table --category noble-gas --active 10
  elementhub list --period 1,2 --block s
  elementhub show 79
  elementhub legend --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			if err := logger.Initialize(false, true); err != nil {
				return errors.Wrap(err, "init logger")
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "toml config file (default $ELEMENTHUB_CONFIG)")
	pf.StringVar(&opts.dbPath, "db", "", "sqlite catalog (default: embedded catalog)")
	pf.StringVar(&opts.catalog, "catalog", "", "JSON or CSV catalog file")
	pf.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of text")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(
		newTableCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newLegendCmd(opts),
	)
	return cmd
}

// service loads config and the catalog it points at. Flags win over config.
func (o *rootOptions) service(ctx context.Context) (*elements.Service, error) {
	cfg, err := utils.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DB.Path = o.dbPath
	}
	if o.catalog != "" {
		cfg.DB.CatalogFile = o.catalog
	}

	cat, source, err := elements.LoadCatalog(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Component("cli").Debugw("catalog loaded", logger.FieldSource, source, logger.FieldCount, cat.Len())
	return elements.NewService(cat, elements.Options{Cutoff: cfg.Table.Cutoff})
}

func (o *rootOptions) renderer(cmd *cobra.Command) *render.Renderer {
	return render.New(lipgloss.NewRenderer(cmd.OutOrStdout()))
}

func (o *rootOptions) printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type filterFlags struct {
	categories []string
	states     []string
	periods    []string
	blocks     []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.categories, "category", nil, "categories, e.g. noble-gas,alkali-metal")
	fl.StringSliceVar(&f.states, "state", nil, "physical states: solid, liquid, gas, unknown")
	fl.StringSliceVar(&f.periods, "period", nil, "periods 1-7")
	fl.StringSliceVar(&f.blocks, "block", nil, "blocks: s, p, d, f")
}

func (f *filterFlags) set() (filter.Set, error) {
	return filter.Parse(f.categories, f.states, f.periods, f.blocks)
}
