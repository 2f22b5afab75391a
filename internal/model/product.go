package model

// Product is the flat record pulled from a product detail page. Every scalar
// field is independently optional; a nil field means the page did not carry it.
type Product struct {
	SKU             *string  `json:"sku" yaml:"sku"`
	Name            *string  `json:"name" yaml:"name"`
	Description     *string  `json:"description" yaml:"description"`
	ImageURL        *string  `json:"image_url" yaml:"image_url"`
	OtherImageURLs  []string `json:"other_image_urls" yaml:"other_image_urls"`
	Price           *string  `json:"price" yaml:"price"`
	DiscountedPrice *string  `json:"discounted_price" yaml:"discounted_price"`
	Category        *string  `json:"category" yaml:"category"`
}

// FoundFields returns how many scalar fields were present, plus one when at
// least one thumbnail URL was found.
func (p *Product) FoundFields() int {
	n := 0
	for _, f := range []*string{p.SKU, p.Name, p.Description, p.ImageURL, p.Price, p.DiscountedPrice, p.Category} {
		if f != nil {
			n++
		}
	}
	if len(p.OtherImageURLs) > 0 {
		n++
	}
	return n
}
