// Package cli składa samodzielne komendy (cobra) dla zarejestrowanych jobów.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	conf "github.com/bartek5186/tourops/internal/config"
	"github.com/bartek5186/tourops/internal/jobs"
	"github.com/bartek5186/tourops/internal/logs"

	// rejestracja jobów
	_ "github.com/bartek5186/tourops/internal/blocks"
	_ "github.com/bartek5186/tourops/internal/locations"
	_ "github.com/bartek5186/tourops/internal/mailcheck"
	_ "github.com/bartek5186/tourops/internal/reconcile"
)

// ConfigEnv: opcjonalna ścieżka do pliku config.json.
const ConfigEnv = "TOUROPS_CONFIG"

// NewJobCommand: komenda bez flag i argumentów, uruchamia jeden job do końca.
func NewJobCommand(jobName string) *cobra.Command {
	spec, _ := jobs.Get(jobName)
	return &cobra.Command{
		Use:           jobName,
		Short:         spec.Short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.Load(os.Getenv(ConfigEnv))
			if err != nil {
				return err
			}
			log := logs.New(cfg.LogFile, true)
			return jobs.NewRunner(log, cfg).Run(cmd.Context(), jobName)
		},
	}
}

// Main: wspólne main() dla binarek w cmd/: kod wyjścia 0 albo 1.
func Main(jobName string) {
	os.Exit(Execute(jobName, os.Args[1:]))
}

func Execute(jobName string, args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := NewJobCommand(jobName)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", jobName, err)
		return 1
	}
	return 0
}
