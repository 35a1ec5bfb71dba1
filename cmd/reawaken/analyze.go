package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wellcrafted/reawaken/internal/cli"
	"github.com/wellcrafted/reawaken/internal/config"
	"github.com/wellcrafted/reawaken/internal/engine"
	"github.com/wellcrafted/reawaken/internal/loader"
	"github.com/wellcrafted/reawaken/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a dormancy analysis over a sales export and planning table",
		RunE:  runAnalyze,
	}

	cmd.Flags().String("sales", "", "path to the sales export CSV (required)")
	cmd.Flags().String("planning", "", "path to the planning CSV with customer-rep assignments")
	cmd.Flags().String("as-of", "", "analysis as-of date, YYYY-MM-DD (default: today)")
	cmd.Flags().Int("dormant-days", 0, "dormancy threshold in days (default 45)")
	cmd.Flags().Int("window-months", 0, "analysis window in months (default 6)")
	cmd.Flags().Float64("high-value", 0, "high-value customer threshold in dollars (default 1000)")
	cmd.Flags().Float64("quick-win", 0, "quick-win customer threshold in dollars (default 500)")
	cmd.Flags().String("output", "", "write the full result as JSON to this path")
	_ = cmd.MarkFlagRequired("sales")

	_ = viper.BindPFlag("analysis.as_of_date", cmd.Flags().Lookup("as-of"))
	_ = viper.BindPFlag("analysis.dormant_days", cmd.Flags().Lookup("dormant-days"))
	_ = viper.BindPFlag("analysis.window_months", cmd.Flags().Lookup("window-months"))
	_ = viper.BindPFlag("analysis.high_value_threshold", cmd.Flags().Lookup("high-value"))
	_ = viper.BindPFlag("analysis.quick_win_threshold", cmd.Flags().Lookup("quick-win"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	result, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderRunSummary(result))

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := writeResultJSON(result, output); err != nil {
			return err
		}
		fmt.Println(cli.SubtleStyle.Render("Result written to " + output))
	}

	return nil
}

// runAnalysis loads the input files and executes one engine run; shared by
// analyze and export.
func runAnalysis(cmd *cobra.Command) (*model.RunResult, error) {
	cfg, err := config.LoadAnalysisConfig()
	if err != nil {
		return nil, err
	}

	analyzer, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}

	csvLoader := loader.NewCSVLoader()

	salesPath, _ := cmd.Flags().GetString("sales")
	sales, err := csvLoader.LoadSales(salesPath)
	if err != nil {
		return nil, err
	}

	planning := model.RawTable{}
	if planningPath, _ := cmd.Flags().GetString("planning"); planningPath != "" {
		planning, err = csvLoader.LoadPlanning(planningPath)
		if err != nil {
			return nil, err
		}
	}

	var bar *progressbar.ProgressBar
	analyzer.OnProgress(func(_, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "scoring customers")
		}
		_ = bar.Add(1)
	})

	return analyzer.Run(sales, planning)
}

func writeResultJSON(result *model.RunResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
