package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gcmrefctl",
		Short: "Drive the AES-128-GCM reference engine from the command line",
		Long: `gcmrefctl is a manual harness around the bit-exact AES-128-GCM
reference engine: it encrypts/decrypts one packet, or precomputes a GHASH
subkey, and prints the result as hex.`,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "one of debug, info, warn, error")

	root.AddCommand(newCryptCmd())
	root.AddCommand(newHKeyCmd())
	root.AddCommand(newVectorsCmd())
	return root
}

// newLogger builds one zap logger for the invocation, tagged with a
// correlation ID so concurrent CLI runs can be told apart in shared logs.
func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		return nil, err
	}
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().With("invocation_id", uuid.NewString()), nil
}
