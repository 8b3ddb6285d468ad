package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type showFlags struct {
	raw   bool
	style string
	width int
}

func newShowCommand(opts *globalOptions) *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Show one order with its per-product totals",
		Long: `Show the items of one order file and the total quantity per product,
rendered as Markdown in the terminal.

Examples:
  orderdash show email1.json
  orderdash show email1.json --raw > email1.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := selectOrder(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			e, _ := b.ExportMarkdown()
			md := string(e.Data)
			if flags.raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			out, err := renderMarkdown(md, flags.style, flags.width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print plain Markdown")
	cmd.Flags().StringVar(&flags.style, "style", "auto", "glamour style: auto, dark, light, notty")
	cmd.Flags().IntVar(&flags.width, "width", 80, "word wrap width")

	return cmd
}

func renderMarkdown(md, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
