package parse

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaPrice reads the displayed original price from the page meta tag.
func metaPrice(doc *goquery.Document) *float64 {
	content, ok := doc.Find(`meta[property="udemy_com:price"]`).First().Attr("content")
	if !ok {
		return nil
	}
	return ParsePrice(content)
}

// ParsePrice normalizes a displayed price ("1,200,000₫") to its numeric
// value. Anything non-numeric after cleaning ("Free") yields nil.
func ParsePrice(s string) *float64 {
	s = strings.ReplaceAll(s, "₫", "")
	s = strings.ReplaceAll(s, ",", "")
	if !allDigits(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type linkedDataFields struct {
	discountPrice *float64
	numSections   *int64
}

// linkedData reads the schema.org block: the first offer's price and the
// syllabus section count. The block may wrap its entries in @graph or be
// the Course entry itself. (nil, nil) means the block is simply absent.
func linkedData(doc *goquery.Document) (*linkedDataFields, error) {
	node := doc.Find(`script[type="application/ld+json"]`).First()
	if node.Length() == 0 {
		return nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(node.Text()), &payload); err != nil {
		return nil, err
	}

	graph, ok := payload["@graph"].([]any)
	if !ok {
		graph = []any{payload}
	}
	course := map[string]any{}
	for _, it := range graph {
		if m, ok := it.(map[string]any); ok && m["@type"] == "Course" {
			course = m
			break
		}
	}

	out := &linkedDataFields{}
	if offers, ok := course["offers"].([]any); ok && len(offers) > 0 {
		if offer, ok := offers[0].(map[string]any); ok {
			out.discountPrice = looseNumber(offer["price"])
		}
	}
	sections := int64(len(anyList(course, "syllabusSections")))
	out.numSections = &sections
	return out, nil
}

// looseNumber accepts a JSON number or a numeric string; JSON-LD offers
// encode prices both ways.
func looseNumber(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}
