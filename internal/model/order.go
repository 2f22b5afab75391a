package model

// Order is one row of an order export. Only the columns the sales reports
// group on are kept; identity is the row position in the source file.
type Order struct {
	ShipState string `json:"ship_state"`
	Category  string `json:"category"`
	ASIN      string `json:"asin"`
	Qty       int    `json:"qty"`
}

// GroupCount is one row of a count summary: the number of orders sharing Key.
type GroupCount struct {
	Key   string `json:"key"`
	Total int    `json:"total_sales"`
}

// ProductQty is one row of the best-sellers summary.
type ProductQty struct {
	ASIN string `json:"asin"`
	Qty  int    `json:"qty"`
}
