package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/marketplace-cli/internal/config"
	"github.com/sells-group/marketplace-cli/internal/pricefeed"
)

var (
	pricefeedInput    string
	pricefeedOutput   string
	pricefeedEncoding string
	pricefeedSheet    string
	pricefeedSkipRows int
)

var pricefeedCmd = &cobra.Command{
	Use:   "pricefeed",
	Short: "Convert an XLSX price list into an Amazon Price feed XML document",
	Long: `Reads SKU, Selling Price and optional Business Price columns from a sheet of
a workbook (the first one unless --sheet is given) and writes one Price
message per row. Numeric cells are read as stored, ignoring number formats.

Examples:
  marketplace-cli pricefeed --xlsx "Price Data.xlsx" --output Price_Data.xml
  marketplace-cli pricefeed --encoding utf-8
  marketplace-cli pricefeed --sheet Prices --skip-rows 2`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if pricefeedInput != "" {
			cfg.PriceFeed.InputPath = pricefeedInput
		}
		if pricefeedOutput != "" {
			cfg.PriceFeed.OutputPath = pricefeedOutput
		}
		if pricefeedEncoding != "" {
			cfg.PriceFeed.Encoding = pricefeedEncoding
		}
		if pricefeedSheet != "" {
			cfg.PriceFeed.Sheet = pricefeedSheet
		}
		if cmd.Flags().Changed("skip-rows") {
			cfg.PriceFeed.SkipRows = pricefeedSkipRows
		}
		if err := cfg.Validate("pricefeed"); err != nil {
			return err
		}
		return pricefeed.Convert(cfg.PriceFeed.InputPath, cfg.PriceFeed.OutputPath, cfg.PriceFeed.Encoding, sheetOptions(cfg.PriceFeed))
	},
}

func sheetOptions(pc config.PriceFeedConfig) pricefeed.SheetOptions {
	return pricefeed.SheetOptions{Sheet: pc.Sheet, SkipRows: pc.SkipRows}
}

func init() {
	pricefeedCmd.Flags().StringVar(&pricefeedInput, "xlsx", "", "price list workbook (default from config)")
	pricefeedCmd.Flags().StringVar(&pricefeedOutput, "output", "", "output XML path (default from config)")
	pricefeedCmd.Flags().StringVar(&pricefeedEncoding, "encoding", "", "output encoding: utf-16 or utf-8 (default from config)")
	pricefeedCmd.Flags().StringVar(&pricefeedSheet, "sheet", "", "sheet holding the price list (default: first sheet)")
	pricefeedCmd.Flags().IntVar(&pricefeedSkipRows, "skip-rows", 0, "rows above the header row to skip")
	rootCmd.AddCommand(pricefeedCmd)
}
