package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wellcrafted/reawaken/internal/cli"
	"github.com/wellcrafted/reawaken/internal/config"
	"github.com/wellcrafted/reawaken/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run a dormancy analysis and write the report to Google Sheets",
		RunE:  runExport,
	}

	cmd.Flags().String("sales", "", "path to the sales export CSV (required)")
	cmd.Flags().String("planning", "", "path to the planning CSV with customer-rep assignments")
	_ = cmd.MarkFlagRequired("sales")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	result, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}

	writer, err := sheets.NewWriter(cmd.Context(), *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(cmd.Context(), result); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render("Report exported to Google Sheets"))
	return nil
}
