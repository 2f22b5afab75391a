package product

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Lookup reads one value from a parsed page. ok is false when the page does
// not carry the value; absence is never an error.
type Lookup func(doc *goquery.Document) (value string, ok bool)

// Text returns the trimmed text of the first element matching selector.
func Text(selector string) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(sel.Text()), true
	}
}

// Attr returns attribute attr of the first element matching selector.
func Attr(selector, attr string) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		return doc.Find(selector).First().Attr(attr)
	}
}

// Nested returns the trimmed text of the first inner match within the first
// outer match.
func Nested(outer, inner string) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		sel := doc.Find(outer).First().Find(inner).First()
		if sel.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(sel.Text()), true
	}
}

// SiblingText finds the first header element whose trimmed text equals label
// and returns the trimmed text of its next sibling matching sibling. This is
// the shape of a label/value row in a details table.
func SiblingText(header, label, sibling string) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		th := doc.Find(header).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.TrimSpace(s.Text()) == label
		}).First()
		if th.Length() == 0 {
			return "", false
		}
		td := th.NextAllFiltered(sibling).First()
		if td.Length() == 0 {
			return "", false
		}
		return strings.TrimSpace(td.Text()), true
	}
}

// JoinedText collects the trimmed text of every item inside the first
// container match and joins the non-empty ones with sep. Items matching skip
// are ignored when skip is non-empty.
func JoinedText(container, item, sep, skip string) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		box := doc.Find(container).First()
		if box.Length() == 0 {
			return "", false
		}
		items := box.Find(item)
		if skip != "" {
			items = items.Not(skip)
		}
		var parts []string
		items.Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		return strings.Join(parts, sep), true
	}
}

// FirstOf tries each lookup in order and returns the first value found.
func FirstOf(lookups ...Lookup) Lookup {
	return func(doc *goquery.Document) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(doc); ok {
				return v, true
			}
		}
		return "", false
	}
}

// AllAttr returns attribute attr of every element matching selector, in
// document order. Elements without the attribute are skipped. The result is
// never nil.
func AllAttr(selector, attr string) func(doc *goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		out := []string{}
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(attr); ok {
				out = append(out, v)
			}
		})
		return out
	}
}
