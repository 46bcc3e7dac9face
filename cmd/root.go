// Package cmd implements the orbitgraph command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TFMV/orbitgraph/config"
	"github.com/TFMV/orbitgraph/internal/logging"
)

var version = "0.3.0"

// skipConfig marks commands that must run without a loadable config file
const skipConfig = "skip-config"

// app is the state shared by every command of one invocation
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the orbitgraph command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "orbitgraph",
		Short: "orbitgraph - interactive force-directed link graphs",
		Long: Brand.Sprint("orbitgraph") + " - lay out a domain and the sites linking to it as an orbit\n" +
			Subtle.Sprint("Open it in a window, or settle it headless and render svg, png, ascii, json, dot or html"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate("orbitgraph {{ .Version }}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides [log] level)")

	root.AddCommand(
		a.runCmd(),
		a.renderCmd(),
		a.formatsCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfig] == "true" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}

	level, err := logging.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logging.NiceLogger(cmd.ErrOrStderr(), level)
	a.logger.Debug("configuration loaded", "path", a.configPath, "theme", a.cfg.Style.Theme)
	return nil
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		Bad.Fprintf(os.Stderr, "orbitgraph: %v\n", err)
	}
	return err
}
