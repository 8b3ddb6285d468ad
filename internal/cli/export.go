package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/export"
)

type exportFlags struct {
	formats []string
	out     string
}

var exportFormats = []string{"json", "csv", "xlsx", "md"}

func newExportCommand(opts *globalOptions) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write one order's items to disk",
		Long: `Export the items of one order file. Each format is written to
{FILE}.{format} in the output directory.

Formats: json, csv, xlsx, md

Examples:
  orderdash export email1.json
  orderdash export email1.json --format csv,xlsx --out ./exports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := normalizeFormats(flags.formats)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			b, err := fetchBrowser(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !b.Select(args[0]) {
				return fmt.Errorf("order %q: %w", args[0], browser.ErrNoSelection)
			}
			exports, err := buildExports(b, formats)
			if err != nil {
				return err
			}
			dir := flags.out
			if dir == "" {
				dir = cfg.ExportDir
			}
			paths, err := export.Writer{Dir: dir}.SaveAll(cmd.Context(), exports)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&flags.formats, "format", "f", []string{"json", "csv"}, "formats to write: "+strings.Join(exportFormats, ","))
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default EXPORT_DIR or .)")

	return cmd
}

// normalizeFormats lowercases, validates and de-duplicates the requested
// formats, keeping their order.
func normalizeFormats(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		known := false
		for _, k := range exportFormats {
			if f == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(exportFormats, ", "))
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return out, nil
}

func buildExports(b *browser.Browser, formats []string) ([]browser.Export, error) {
	out := make([]browser.Export, 0, len(formats))
	for _, f := range formats {
		var (
			e   browser.Export
			ok  bool
			err error
		)
		switch f {
		case "json":
			e, ok = b.ExportStructured()
		case "csv":
			e, ok = b.ExportTabular()
		case "xlsx":
			e, ok, err = b.ExportSpreadsheet()
		case "md":
			e, ok = b.ExportMarkdown()
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", f, err)
		}
		if !ok {
			return nil, browser.ErrNoSelection
		}
		out = append(out, e)
	}
	return out, nil
}
