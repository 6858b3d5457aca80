package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"elementhub/internal/display"
)

func newTableCmd(opts *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		active  int
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render the periodic table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := filters.set()
			if err != nil {
				return err
			}
			if active < 0 {
				return errors.New("--active must not be negative")
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}

			t := svc.Table(fs, active)
			summary := display.Summarize(fs)
			if opts.jsonOut {
				return opts.printJSON(cmd, map[string]any{
					"filter_summary": summary,
					"counts":         t.Counts(),
					"table":          t,
				})
			}

			rn := opts.renderer(cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rn.Summary(summary, t.Counts()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, rn.Table(t))
			if e, ok := t.ActiveElement(); ok && e != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, rn.Detail(display.NewDetail(*e)))
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVar(&active, "active", 0, "atomic number to highlight")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List elements matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := filters.set()
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}

			items := svc.List(fs)
			if opts.jsonOut {
				return opts.printJSON(cmd, map[string]any{
					"total":          len(items),
					"filter_summary": display.Summarize(fs),
					"items":          items,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.renderer(cmd).List(items))
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <atomic-number>",
		Short: "Show one element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return errors.Newf("atomic number must be a positive integer, got %q", args[0])
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			e, err := svc.Get(n)
			if err != nil {
				return err
			}

			d := display.NewDetail(e)
			if opts.jsonOut {
				return opts.printJSON(cmd, map[string]any{"element": e, "detail": d})
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.renderer(cmd).Detail(d))
			return nil
		},
	}
}

func newLegendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Show the category legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := display.Legend()
			if opts.jsonOut {
				return opts.printJSON(cmd, map[string]any{"items": items})
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.renderer(cmd).Legend(items))
			return nil
		},
	}
}
