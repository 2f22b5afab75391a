package model

// PriceRecord is one row of a seller price list.
type PriceRecord struct {
	Row           int      `json:"row"` // 1-based spreadsheet row
	SKU           string   `json:"sku"`
	SellingPrice  float64  `json:"selling_price"`
	BusinessPrice *float64 `json:"business_price,omitempty"`
}

// HasDistinctBusinessPrice reports whether the record carries a business
// price that differs from its selling price.
func (p PriceRecord) HasDistinctBusinessPrice() bool {
	return p.BusinessPrice != nil && *p.BusinessPrice != p.SellingPrice
}
