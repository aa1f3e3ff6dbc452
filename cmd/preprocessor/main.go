package main

import (
	"encoding/json"
	"os"

	"rgehrsitz/appraise/internal/logging"
	"rgehrsitz/appraise/pkg/preprocessor"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Preprocessing failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "preprocessor <rules-file>",
		Short:         "Validate a rules file and summarize what it loads as",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Setup(cmd.ErrOrStderr(), logLevel, logging.FormatConsole); err != nil {
				return err
			}

			summary, err := preprocessor.InspectFile(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	return cmd
}
