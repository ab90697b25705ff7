package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/internal/config"
	"github.com/tsawler/reqdoc/internal/logging"
)

// app is the state shared by the subcommands once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "reqdoc",
		Short: "Extract named sections from requirement-analysis documents",
		Long: `reqdoc reads requirement-analysis documents (DOCX, ODT or HTML) and
extracts the sections of its catalog: free-text sections such as the scope
or the security requirements, and tables such as integrations or
authorization matrices.

Each section is first looked up by its header; when no header matches, the
whole document is scanned and the result is flagged for review.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./reqdoc.yaml or ~/.reqdoc/reqdoc.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", config.DefaultLogFormat, "log format: text or json")
	flags.String("catalog", "", "section catalog file (default: embedded catalog)")
	flags.Int("concurrency", config.DefaultConfig().Concurrency, "sections extracted at once")
	flags.String("html-navigation", config.DefaultHTMLNavigation, "page chrome removed from HTML input: none, explicit, standard or aggressive")

	root.AddCommand(
		newExtractCmd(a),
		newConvertCmd(a),
		newSectionsCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads the configuration and builds the logger. Logs go to stderr
// so they never mix with command output.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// catalog returns the configured catalog.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(a.cfg.Catalog)
}
