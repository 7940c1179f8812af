package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/homepage/pkg/logger"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "todotxt",
		Short:         "Normalize, fingerprint and check todo.txt lines",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr")

	log := func() *zap.Logger {
		l, err := logger.New(logger.Config{Level: logLevel, Encoding: "console", Output: os.Stderr})
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	rootCmd.AddCommand(fmtCmd(log))
	rootCmd.AddCommand(hashCmd(log))
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(whenCmd())

	return rootCmd
}
