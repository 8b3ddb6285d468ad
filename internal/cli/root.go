// Package cli implements the cobra commands of orderdash.
//
// Running orderdash without a subcommand opens the dashboard. The list, show
// and export subcommands work on the same order collection non-interactively.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"auto-order-dashboard/internal/config"
	"auto-order-dashboard/internal/infra/logx"
)

// Version, Commit and Date are injected from main at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	baseURL    string
	ordersFile string
	verbose    bool
	logOut     io.Writer // CLI log destination, set before any command runs
}

// debug reports whether full debug logging was requested.
func (o *globalOptions) debug() bool {
	return o.verbose || os.Getenv("DEBUG") != ""
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "orderdash",
		Short: "Browse parsed purchase orders",
		Long: `orderdash shows the purchase orders parsed by the auto-order backend.

Without a subcommand it opens the interactive dashboard. Orders come from
the backend's /orders endpoint, or from a local JSON file with --file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logOut = cmd.ErrOrStderr()
			setupCLILogging(opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.orderdashrc)")
	pf.StringVar(&opts.baseURL, "base-url", "", "order backend base URL")
	pf.StringVar(&opts.ordersFile, "file", "", "read orders from a local JSON file instead of the backend")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newTUICommand(opts))
	root.AddCommand(newListCommand(opts))
	root.AddCommand(newShowCommand(opts))
	root.AddCommand(newExportCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rcPath returns the rc file selected by --config.
func (o *globalOptions) rcPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

// loadConfig reads the rc file and environment, then applies flag overrides.
// A configured LOG_LEVEL turns CLI logging on unless debug logging already is.
func loadConfig(opts *globalOptions) (config.Config, error) {
	path := opts.rcPath()
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.ordersFile != "" {
		cfg.OrdersFile = opts.ordersFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if cfg.LogLevel != "" && !opts.debug() && opts.logOut != nil {
		logx.SetOutput(opts.logOut)
		logx.SetMinLevel(logx.ParseLevel(cfg.LogLevel))
	}
	logx.Debugf("config loaded from %s (base=%s file=%s)", path, cfg.BaseURL, cfg.OrdersFile)
	return cfg, nil
}

func setupCLILogging(opts *globalOptions) {
	if !opts.debug() {
		logx.SetOutput(io.Discard)
		return
	}
	logx.SetOutput(opts.logOut)
	logx.SetMinLevel(logx.LevelDebug)
	logx.SetVerbose(true)
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
