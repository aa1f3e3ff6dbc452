package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"rgehrsitz/appraise/internal/config"
	"rgehrsitz/appraise/internal/logging"
	"rgehrsitz/appraise/internal/metrics"
	"rgehrsitz/appraise/internal/preprocessor"
	"rgehrsitz/appraise/internal/runtime"
	"rgehrsitz/appraise/internal/shell"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	rulesFile   string
	factsFile   string
	metricsFile string
	logLevel    string
	workers     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "appraise",
		Short: "Classify employee performance facts against a rule set",
		Long: `appraise evaluates fact bundles against an ordered knowledge base of
special and standard rules and reports exactly one outcome per bundle.

Without --facts it asks for a single employee's productivity, teamwork and
communication. With --facts it reads one JSON object per line and writes one
JSON decision per line.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd, cfg, opts.factsFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.rulesFile, "rules", "r", "", "JSON or YAML rules file (default: built-in employee review rules)")
	flags.StringVarP(&opts.factsFile, "facts", "f", "", "JSON lines file of fact bundles to evaluate, or - for stdin")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "maximum concurrent evaluations in batch mode")

	return cmd
}

// resolveConfig layers flags over environment variables over the config file.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("rules") {
		cfg.RulesFile = opts.rulesFile
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.File = opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = opts.workers
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, factsFile string) error {
	if err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	kb, err := preprocessor.LoadKnowledgeBase(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	recorder := metrics.NewRecorder(cfg.Metrics.Namespace)

	if factsFile != "" {
		err = runBatch(cmd, kb, factsFile, cfg.Batch.Workers, recorder)
	} else {
		err = runInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), kb, recorder)
	}
	if err != nil {
		return err
	}

	if cfg.Metrics.File != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.File); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Metrics.File).Msg("Metrics written")
	}
	return nil
}

func runInteractive(in io.Reader, out io.Writer, kb *runtime.KnowledgeBase, obs runtime.Observer) error {
	prompter := shell.NewPrompter(in, out, isTerminal(in))
	f, err := prompter.ReadEmployee()
	if err != nil {
		if shell.IsEndOfInput(err) {
			return fmt.Errorf("input ended before the review was complete: %w", err)
		}
		return err
	}

	start := time.Now()
	d := kb.Decide(f)
	obs.Observe(d, time.Since(start))

	fmt.Fprintln(out, shell.RenderResult(d.Outcome, isTerminal(out)))
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && shell.IsTerminal(f)
}
