package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-seoform/internal/prompt"
	"github.com/goliatone/go-seoform/pkg/config"
)

// app carries state shared by every command. Tests replace logger and
// driver before executing.
type app struct {
	configPath string
	verbose    bool
	locale     string
	dbPath     string

	cfg    config.Config
	logger *zap.Logger
	driver prompt.Driver
}

func newApp() *app {
	return &app{driver: prompt.Survey()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "seoform",
		Short: "Augment form trees with SEO analysis widgets and settings",
		Long: `seoform reads a built content-editing form (JSON or YAML), injects the
snippet editor and overall score widgets, and attaches the settings bag the
client-side analysis needs. It also provisions the SEO field on bundles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.locale, "locale", "", "override the configured locale")
	flags.StringVar(&a.dbPath, "db", "", "override the configured SQLite database path")

	root.AddCommand(
		newProjectCmd(a),
		newProcessCmd(a),
		newQueryCmd(a),
		newSchemaCmd(a),
		newFieldsCmd(a),
		newProvisionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}
	if a.dbPath != "" {
		cfg.DatabasePath = a.dbPath
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}
	zapConfig := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
