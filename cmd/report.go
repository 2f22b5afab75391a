package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/marketplace-cli/internal/config"
	"github.com/sells-group/marketplace-cli/internal/report"
)

var (
	reportCSV    string
	reportOutput    string
	reportDelimiter string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize an order export CSV into a three-sheet workbook",
	Long: `Reads an order export and writes the "State Orders", "Category Orders"
and "Top 20 Products" summaries to an XLSX workbook.

Examples:
  marketplace-cli report --csv "Amazon Sale Report.csv" --output Amazon_Sale_Report.xlsx
  marketplace-cli report --csv orders.tsv --delimiter "$(printf '\t')"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if reportCSV != "" {
			cfg.Report.CSVPath = reportCSV
		}
		if reportOutput != "" {
			cfg.Report.OutputPath = reportOutput
		}
		if reportDelimiter != "" {
			cfg.Report.Delimiter = reportDelimiter
		}
		if err := cfg.Validate("report"); err != nil {
			return err
		}
		return runReport(cfg.Report.CSVPath, cfg.Report.OutputPath, reportOptions(cfg.Report), cmd.OutOrStdout())
	},
}

func reportOptions(rc config.ReportConfig) report.Options {
	return report.Options{Delimiter: rc.DelimiterRune()}
}

func runReport(csvPath, outputPath string, opts report.Options, out io.Writer) error {
	r, err := report.Load(csvPath, opts)
	if err != nil {
		return err
	}
	zap.L().Info("loaded orders",
		zap.String("csv", csvPath),
		zap.Int("orders", r.Len()),
	)

	if err := r.SaveToExcel(outputPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Reports have been saved to %s\n", outputPath)
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "order export CSV (default from config)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "output XLSX path (default from config)")
	reportCmd.Flags().StringVar(&reportDelimiter, "delimiter", "", "CSV field separator (default from config)")
	rootCmd.AddCommand(reportCmd)
}
