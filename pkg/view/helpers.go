package view

import (
	"fmt"
	"html/template"
	"net/url"
)

// Price formats a product price in dollars with two decimals.
// E.g., 9.5 -> "$9.50"
func Price(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ImageDataURI builds an inline <img> source from the base64 payload the
// backend stores for each product.
func ImageDataURI(b64 string) template.URL {
	if b64 == "" {
		return ""
	}
	return template.URL("data:image;base64," + b64)
}

// WhatsappLink builds a wa.me chat link with a prefilled greeting.
func WhatsappLink(number, text string) string {
	if number == "" {
		return ""
	}
	link := "https://wa.me/" + url.PathEscape(number)
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
