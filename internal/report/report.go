// Package report builds grouped sales summaries from an order export and
// writes them to a multi-sheet workbook.
package report

import (
	"cmp"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/samber/lo"

	"github.com/sells-group/marketplace-cli/internal/fetcher"
	"github.com/sells-group/marketplace-cli/internal/model"
)

// Order export columns the summaries depend on.
const (
	ColShipState = "ship-state"
	ColCategory  = "Category"
	ColASIN      = "ASIN"
	ColQty       = "Qty"
)

// TopProductsLimit is the number of rows in the best-sellers summary.
const TopProductsLimit = 20

var requiredColumns = []string{ColShipState, ColCategory, ColASIN, ColQty}

type orderRow struct {
	ShipState string `csv:"ship-state"`
	Category  string `csv:"Category"`
	ASIN      string `csv:"ASIN"`
	Qty       string `csv:"Qty"`
}

// Report holds a loaded order table. Summaries are recomputed from the full
// table on every call.
type Report struct {
	orders []model.Order
}

// New creates a Report over already-loaded orders.
func New(orders []model.Order) *Report {
	return &Report{orders: orders}
}

// Options controls how an order export is read.
type Options struct {
	Delimiter rune // field separator; zero means ','
}

// Load reads an order export CSV from path.
func Load(path string, opts Options) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open csv")
	}
	defer f.Close() //nolint:errcheck

	return Parse(f, opts)
}

// Parse reads an order export CSV. The ship-state, Category, ASIN and Qty
// columns are required; any others are ignored.
func Parse(r io.Reader, opts Options) (*Report, error) {
	rows, err := fetcher.DecodeCSV[orderRow](r, fetcher.CSVOptions{
		Delimiter:  opts.Delimiter,
		LazyQuotes: true,
		TrimSpace:  true,
		Required:   requiredColumns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "report: read csv")
	}

	orders := make([]model.Order, 0, len(rows))
	for i, row := range rows {
		qty, err := parseQty(row.Qty)
		if err != nil {
			return nil, eris.Wrapf(err, "report: line %d: invalid %s %q", i+2, ColQty, row.Qty)
		}
		orders = append(orders, model.Order{
			ShipState: row.ShipState,
			Category:  row.Category,
			ASIN:      row.ASIN,
			Qty:       qty,
		})
	}

	return New(orders), nil
}

// parseQty accepts integers and integral decimals ("3.0"). An empty cell
// counts as zero units.
func parseQty(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, eris.Errorf("not a whole number")
	}
	return int(f), nil
}

// Len returns the number of loaded orders.
func (r *Report) Len() int { return len(r.orders) }

// StateOrders counts orders per ship-state.
func (r *Report) StateOrders() []model.GroupCount {
	return countBy(r.orders, func(o model.Order) string { return o.ShipState })
}

// CategoryOrders counts orders per category.
func (r *Report) CategoryOrders() []model.GroupCount {
	return countBy(r.orders, func(o model.Order) string { return o.Category })
}

// Top20Products returns the twenty best-selling ASINs by units sold.
func (r *Report) Top20Products() []model.ProductQty {
	return r.TopProducts(TopProductsLimit)
}

// TopProducts sums Qty per ASIN and returns at most n rows, largest first.
// Equal totals keep the order in which the ASINs first appear in the input.
// A negative n returns every ASIN.
func (r *Report) TopProducts(n int) []model.ProductQty {
	totals := make(map[string]int)
	var firstSeen []string
	for _, o := range r.orders {
		if _, ok := totals[o.ASIN]; !ok {
			firstSeen = append(firstSeen, o.ASIN)
		}
		totals[o.ASIN] += o.Qty
	}

	products := lo.Map(firstSeen, func(asin string, _ int) model.ProductQty {
		return model.ProductQty{ASIN: asin, Qty: totals[asin]}
	})
	slices.SortStableFunc(products, func(a, b model.ProductQty) int {
		return cmp.Compare(b.Qty, a.Qty)
	})

	if n >= 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// countBy groups orders by key and counts rows per group, ordered by key.
// Empty keys form their own group so the counts always add up to the number
// of orders.
func countBy(orders []model.Order, key func(model.Order) string) []model.GroupCount {
	counts := lo.CountValuesBy(orders, key)
	keys := lo.Keys(counts)
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) model.GroupCount {
		return model.GroupCount{Key: k, Total: counts[k]}
	})
}
