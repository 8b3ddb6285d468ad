package cli

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"auto-order-dashboard/internal/export"
	"auto-order-dashboard/internal/infra/logx"
	"auto-order-dashboard/internal/ui"
)

func newTUICommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// the terminal belongs to the dashboard, so logs go to a file
	logx.SetOutput(io.Discard)
	if opts.debug() || cfg.LogLevel != "" {
		level := logx.ParseLevel(cfg.LogLevel)
		if opts.debug() {
			level = logx.LevelDebug
		}
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer f.Close()
		logx.SetOutput(f)
		logx.SetMinLevel(level)
		log.SetFlags(0)
		log.SetOutput(logx.StdlogWriter(level, f))
		fmt.Fprintf(cmd.ErrOrStderr(), "Logging at %s level. Run 'tail -f debug.log' to view logs.\n", level)
	}

	src, metrics := newSource(cfg)
	m := ui.New(ui.Deps{
		Browser:     newBrowser(cfg),
		Source:      src,
		Metrics:     metrics,
		Writer:      export.Writer{Dir: cfg.ExportDir},
		WatchPath:   cfg.OrdersFile,
		SourceLabel: sourceLabel(src),
	})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
