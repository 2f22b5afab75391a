// Package product extracts a flat product record from a product detail page
// using a table of independent selector lookups.
package product

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/marketplace-cli/internal/model"
)

// Field names, matching the JSON keys of model.Product.
const (
	FieldSKU             = "sku"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldImageURL        = "image_url"
	FieldOtherImageURLs  = "other_image_urls"
	FieldPrice           = "price"
	FieldDiscountedPrice = "discounted_price"
	FieldCategory        = "category"
)

// BreadcrumbSeparator joins category breadcrumb entries.
const BreadcrumbSeparator = " > "

// Field binds a name to the lookup that extracts it.
type Field struct {
	Name   string
	Lookup Lookup
	set    func(p *model.Product, v *string)
}

var (
	priceLookup = Text("span.a-price-whole")

	// Discounted price falls back to the regular price when the page has no
	// strike-through price block.
	discountedPriceLookup = FirstOf(
		Nested("span.a-price.a-text-price.a-size-base", "span.a-offscreen"),
		priceLookup,
	)

	otherImageURLs = AllAttr("img.a-thumbnail-image", "src")
)

// Fields is the scalar extraction table. Each entry is evaluated independently.
var Fields = []Field{
	{
		Name:   FieldSKU,
		Lookup: SiblingText("th", "ASIN", "td"),
		set:    func(p *model.Product, v *string) { p.SKU = v },
	},
	{
		Name:   FieldName,
		Lookup: Text("span#productTitle"),
		set:    func(p *model.Product, v *string) { p.Name = v },
	},
	{
		Name:   FieldDescription,
		Lookup: Text("div#productDescription"),
		set:    func(p *model.Product, v *string) { p.Description = v },
	},
	{
		Name:   FieldImageURL,
		Lookup: Attr("img#landingImage", "src"),
		set:    func(p *model.Product, v *string) { p.ImageURL = v },
	},
	{
		Name:   FieldPrice,
		Lookup: priceLookup,
		set:    func(p *model.Product, v *string) { p.Price = v },
	},
	{
		Name:   FieldDiscountedPrice,
		Lookup: discountedPriceLookup,
		set:    func(p *model.Product, v *string) { p.DiscountedPrice = v },
	},
	{
		Name:   FieldCategory,
		Lookup: JoinedText("div#wayfinding-breadcrumbs_container", "li", BreadcrumbSeparator, ".a-breadcrumb-divider"),
		set:    func(p *model.Product, v *string) { p.Category = v },
	},
}

// LookupField returns the table entry for name.
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Extract runs every field lookup once against doc and assembles the record.
// Missing fields are left nil.
func Extract(doc *goquery.Document) *model.Product {
	p := &model.Product{}
	for _, f := range Fields {
		if v, ok := f.Lookup(doc); ok {
			f.set(p, &v)
		}
	}
	p.OtherImageURLs = otherImageURLs(doc)
	return p
}
