package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	seoform "github.com/goliatone/go-seoform"
	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/metrics"
	"github.com/goliatone/go-seoform/pkg/orchestrator"
	"github.com/goliatone/go-seoform/pkg/settings"
)

func newProjectCmd(a *app) *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "project <form-file>",
		Short: "Print the settings bag projected from a form tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := formtree.LoadFile(args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(nil, orchestrator.WithSkipMarkup(true))
			if err != nil {
				return err
			}
			bag := orch.Projector().ProjectLocale(tree, a.cfg.Locale)
			if validate {
				if err := settings.Validate(bag); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), bag)
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the bag against its schema")
	return cmd
}

func newProcessCmd(a *app) *cobra.Command {
	var (
		output      string
		skipMarkup  bool
		dumpMetrics bool
		presetFile  string
	)
	cmd := &cobra.Command{
		Use:   "process <form-file>",
		Short: "Inject the SEO widgets and settings bag into a form tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := formtree.LoadFile(args[0])
			if err != nil {
				return err
			}

			var registry *prometheus.Registry
			var recorder metrics.Recorder
			if dumpMetrics {
				registry = prometheus.NewRegistry()
				prom, err := metrics.NewPrometheusRecorder(registry)
				if err != nil {
					return err
				}
				recorder = prom
			}

			extra := []orchestrator.Option{orchestrator.WithSkipMarkup(skipMarkup)}
			if presetFile != "" {
				preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(presetFile)), filepath.Base(presetFile))
				if err != nil {
					return err
				}
				extra = append(extra, orchestrator.WithTransformers(preset))
			}
			orch, err := a.orchestrator(recorder, extra...)
			if err != nil {
				return err
			}

			out, err := orch.Process(cmd.Context(), orchestrator.Request{Tree: tree, Locale: a.cfg.Locale})
			if err != nil {
				return err
			}

			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				if err := writeJSON(file, out); err != nil {
					_ = file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			} else if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}

			if registry != nil {
				families, err := registry.Gather()
				if err != nil {
					return err
				}
				for _, family := range families {
					if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), family); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVar(&skipMarkup, "skip-markup", false, "only attach the settings bag")
	flags.BoolVar(&dumpMetrics, "metrics", false, "print Prometheus counters to stderr when done")
	flags.StringVar(&presetFile, "preset", "", "preset document applied before processing")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <form-file> <jsonpath>",
		Short: "Evaluate a JSONPath expression against a form tree",
		Example: `  seoform query form.json '$.body.widget.0.value["#id"]'
  seoform query form.json '$..["#id"]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := formtree.LoadFile(args[0])
			if err != nil {
				return err
			}
			results, err := formtree.Select(tree, args[1])
			if err != nil {
				return err
			}
			a.logger.Debug("seoform: query evaluated", zap.Int("matches", len(results)))
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
}

func newSchemaCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the settings bag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), settings.Schema())
		},
	}
}

func (a *app) orchestrator(recorder metrics.Recorder, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options, err := seoform.OptionsFromConfig(a.cfg, a.logger, recorder)
	if err != nil {
		return nil, err
	}
	return seoform.NewOrchestrator(append(options, extra...)...), nil
}
