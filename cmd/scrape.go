package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/marketplace-cli/internal/config"
	"github.com/sells-group/marketplace-cli/internal/fetcher"
	"github.com/sells-group/marketplace-cli/internal/model"
	"github.com/sells-group/marketplace-cli/internal/product"
)

var (
	scrapeURL    string
	scrapeFormat string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract product fields from one product detail page",
	Long: `Fetches a single product page and prints sku, name, description, image_url,
other_image_urls, price, discounted_price and category. Fields the page does not
carry are printed as null.

Examples:
  marketplace-cli scrape --url https://www.amazon.com/dp/B07X6C9RMF
  marketplace-cli scrape --url https://www.amazon.com/dp/B07X6C9RMF --format yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("scrape"); err != nil {
			return err
		}

		s := product.NewScraper(newPageFetcher(cfg.Product), scrapeURL)
		p, err := s.ScrapeProductData(cmd.Context())
		if err != nil {
			return err
		}
		return writeProduct(cmd.OutOrStdout(), p, scrapeFormat)
	},
}

func newPageFetcher(pc config.ProductConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    pc.UserAgent,
		Timeout:      time.Duration(pc.TimeoutSecs) * time.Second,
		MaxBodyBytes: pc.MaxBodyBytes,
	})
}

func writeProduct(w io.Writer, p *model.Product, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return eris.Wrap(err, "scrape: encode json")
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return eris.Wrap(err, "scrape: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "scrape: encode yaml")
		}
	default:
		return eris.Errorf("scrape: unknown format %q (want json or yaml)", format)
	}
	return nil
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "", "product page URL (required)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", "json", "output format: json or yaml")
	_ = scrapeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scrapeCmd)
}
