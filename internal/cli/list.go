package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auto-order-dashboard/internal/core/browser"
)

type listFlags struct {
	query string
	fuzzy bool
	json  bool
}

// listEntry is one row of list output.
type listEntry struct {
	File  string `json:"file"`
	Name  string `json:"name"`
	Items int    `json:"items"`
	Units int    `json:"units"`
}

func newListCommand(opts *globalOptions) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List order files",
		Long: `List every order file with its customer name, item count and unit total.

Examples:
  orderdash list
  orderdash list --query basket
  orderdash list --query bwc --fuzzy --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			b, err := fetchBrowser(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), listEntries(b, flags), flags.json)
		},
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "only show orders whose customer name or file contains this text")
	cmd.Flags().BoolVar(&flags.fuzzy, "fuzzy", false, "rank --query matches fuzzily")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output JSON")

	return cmd
}

func listEntries(b *browser.Browser, flags *listFlags) []listEntry {
	var list []browser.Order
	if flags.fuzzy {
		list = b.FilterFuzzy(flags.query, browser.DefaultFilterConfig())
	} else {
		list = b.Filter(flags.query)
	}
	out := make([]listEntry, 0, len(list))
	for _, o := range list {
		out = append(out, listEntry{
			File:  o.File,
			Name:  b.DisplayName(o.File),
			Items: len(o.Items),
			Units: browser.TotalQuantity(o.Items),
		})
	}
	return out
}

func printList(w io.Writer, entries []listEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No orders found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tNAME\tITEMS\tUNITS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", e.File, e.Name, e.Items, e.Units)
	}
	return tw.Flush()
}
