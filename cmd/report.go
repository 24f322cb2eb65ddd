package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/report"
	"github.com/KaramelBytes/dataloom-cli/internal/spinner"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
	"github.com/KaramelBytes/dataloom-cli/internal/viz"
)

var (
	repOutputDir string
	repNoHeader  bool
	repVisualize bool
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Generate an exploratory data analysis PDF report for a tabular file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		outDir := cfg.OutputDir
		if repOutputDir != "" {
			outDir = repOutputDir
		}
		visualize := cfg.Visualize || repVisualize

		level := slog.LevelWarn
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		sp := spinner.New("Reading in file...")
		if cfg.Verbose {
			sp.Start()
			defer sp.Stop()
		}

		ds, err := dataset.Load(path, !repNoHeader)
		if err != nil {
			if cfg.Verbose {
				sp.Status("Failed reading file!", false)
			}
			return err
		}
		if cfg.Verbose {
			sp.Status("Finished reading file!", true)
			sp.SetMessage("Analyzing...")
		}
		logger.Debug("loaded dataset", "title", ds.Title, "rows", ds.Rows, "columns", len(ds.Columns))

		analysis, err := stats.Describe(ds)
		if err != nil {
			if cfg.Verbose {
				sp.Status("Failed computing statistics!", false)
			}
			return err
		}
		missing := stats.Missing(ds)
		if cfg.Verbose {
			sp.Status("Finished analysis!", true)
		}

		reportID := uuid.NewString()

		var plots []viz.Plot
		if visualize {
			if cfg.Verbose {
				sp.SetMessage("Rendering plots...")
			}
			plotDir := filepath.Join(outDir, cfg.PlotsDir, reportID)
			plots, err = viz.Render(ds, plotDir, logger)
			if err != nil {
				if cfg.Verbose {
					sp.Status("Failed rendering plots!", false)
				}
				return err
			}
			if cfg.Verbose {
				sp.Status("Finished rendering plots!", true)
			}
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		outPath := filepath.Join(outDir, ds.Title+"_report.pdf")
		if cfg.Verbose {
			sp.SetMessage("Generating report...")
		}
		in := report.Input{
			Dataset:  ds,
			Stats:    analysis,
			Missing:  missing,
			Plots:    plots,
			Version:  version,
			ReportID: reportID,
		}
		if err := report.Generate(in, outPath); err != nil {
			if cfg.Verbose {
				sp.Status("Failed generating report!", false)
			}
			return err
		}
		if cfg.Verbose {
			sp.Status("Finished generating report!", true)
			sp.Stop()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&repOutputDir, "output-dir", "o", "", "directory for the report and plots (overrides config)")
	reportCmd.Flags().BoolVar(&repNoHeader, "no-header", false, "treat the first row as data instead of column names")
	reportCmd.Flags().BoolVar(&repVisualize, "visualize", false, "render diagnostic plots into the report")
	rootCmd.AddCommand(reportCmd)
}
