package product

import (
	"context"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/marketplace-cli/internal/model"
)

// PageFetcher retrieves a page body as UTF-8 HTML.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (io.Reader, error)
}

// Scraper extracts product data from one product page. It keeps the last
// fetched document; lookups never touch the network.
type Scraper struct {
	fetcher PageFetcher
	url     string
	doc     *goquery.Document
}

// NewScraper creates a Scraper for url.
func NewScraper(fetcher PageFetcher, url string) *Scraper {
	return &Scraper{fetcher: fetcher, url: url}
}

// Document returns the last fetched document, or nil before FetchPage.
func (s *Scraper) Document() *goquery.Document { return s.doc }

// FetchPage issues one GET for the page and parses the body. Only transport
// failures are errors; an error page still parses into a document.
func (s *Scraper) FetchPage(ctx context.Context) error {
	body, err := s.fetcher.FetchHTML(ctx, s.url)
	if err != nil {
		return eris.Wrap(err, "product: fetch page")
	}
	doc, err := ParseDocument(body)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// Field evaluates the named field against the last fetched document.
func (s *Scraper) Field(name string) (string, bool) {
	if s.doc == nil {
		return "", false
	}
	f, ok := LookupField(name)
	if !ok {
		return "", false
	}
	return f.Lookup(s.doc)
}

// OtherImageURLs returns every thumbnail image URL in document order.
func (s *Scraper) OtherImageURLs() []string {
	if s.doc == nil {
		return []string{}
	}
	return otherImageURLs(s.doc)
}

// ScrapeProductData fetches the page once and runs every extractor once.
// A record with missing fields is a normal result, not an error.
func (s *Scraper) ScrapeProductData(ctx context.Context) (*model.Product, error) {
	if err := s.FetchPage(ctx); err != nil {
		return nil, err
	}
	p := Extract(s.doc)

	zap.L().Debug("product: scraped page",
		zap.String("url", s.url),
		zap.Int("fields_found", p.FoundFields()),
		zap.Int("thumbnails", len(p.OtherImageURLs)),
	)
	return p, nil
}

// ParseDocument parses an HTML body into a queryable document.
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "product: parse html")
	}
	return doc, nil
}
