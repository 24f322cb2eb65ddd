package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dataloom-cli/internal/config"
)

// version is the generator version stamped on every report title page.
const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	verbose bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:     "dataloom",
	Short:   "DataLoom CLI: exploratory data analysis reports for tabular files",
	Long:    `DataLoom reads a tabular data file (CSV, TSV, or Parquet), computes descriptive and missing-value statistics per column, and renders the findings into a paginated PDF report with a table of contents and glossary.`,
	Version: version,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable the progress spinner and debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{OutputDir: ".", PlotsDir: "plots"}
		return
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("verbose") {
		cfg.Verbose = verbose
	}
}
