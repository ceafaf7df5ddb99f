// Command cipherbench runs benchmark sessions against a computation
// provider and writes per-benchmark timing reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/cipherbench/go-harness/config"
	"github.com/cipherbench/go-harness/datagen"
	"github.com/cipherbench/go-harness/engine"
	"github.com/cipherbench/go-harness/provider"
	"github.com/cipherbench/go-harness/provider/cleartext"
	"github.com/cipherbench/go-harness/workloads"
)

var (
	configPath   string
	providerName string
	reportRoot   string
	seed         uint64
	noValidation bool

	rootCmd = &cobra.Command{
		Use:   "cipherbench",
		Short: "Benchmark harness for numeric computation providers",
		Long: `cipherbench drives a computation provider through the benchmarks it
advertises, validates the results against locally computed ground truth
and records wall and CPU timings per operation.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run every benchmark the provider offers",
		RunE:  runBenchmarks,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the benchmarks the provider offers without running them",
		RunE:  listBenchmarks,
	}
)

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "cleartext", "provider to benchmark")
	rootCmd.PersistentFlags().StringVar(&reportRoot, "report-root", "", "directory reports are written under, overrides the config file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "data generator seed, overrides the config file")
	runCmd.Flags().BoolVar(&noValidation, "no-validation", false, "skip checking results against the ground truth")

	rootCmd.AddCommand(runCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	if reportRoot != "" {
		cfg.ReportRoot = reportRoot
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if noValidation {
		cfg.SkipValidation = true
	}
	return cfg, nil
}

func newProvider() (provider.Provider, error) {
	switch providerName {
	case "cleartext":
		return cleartext.New(), nil
	}
	return nil, fmt.Errorf("unknown provider %q", providerName)
}

func newEngine(cfg config.Config, withReports bool) (*engine.Engine, error) {
	p, err := newProvider()
	if err != nil {
		return nil, err
	}
	root := ""
	if withReports {
		root = cfg.ReportRoot
	}
	return engine.New(engine.Options{
		Provider:   p,
		Registry:   workloads.DefaultRegistry(),
		Config:     cfg.Benchmark(),
		ReportRoot: root,
	})
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	datagen.Seed(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine(cfg, true)
	if err != nil {
		return err
	}
	results, err := eng.Run(ctx)
	printSummary(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}
	if n := engine.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d benchmarks failed", n, len(results))
	}
	return nil
}

func listBenchmarks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg, false)
	if err != nil {
		return err
	}
	return eng.List(cmd.OutOrStdout())
}

func printSummary(w io.Writer, results []engine.Result) {
	for _, r := range results {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "SKIP  descriptor %d (unclaimed)\n", uint64(r.ID))
		case r.Err != nil:
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.Workload, r.Err)
		default:
			fmt.Fprintf(w, "PASS  %s\n", r.Workload)
		}
	}
}
