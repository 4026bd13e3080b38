package view

import "html/template"

// ProductCard is one entry of the product grid (admin list and storefront).
type ProductCard struct {
	ID          int
	Name        string
	Description string
	Price       string       // already formatted, empty when the product has no price
	ImageSrc    template.URL // data: URI, empty when the product has no image
}

// ProductForm backs the create/edit modal form. EditID is zero on create;
// ImageRequired is true only on create (edits keep the stored image).
type ProductForm struct {
	EditID        int
	Name          string
	Description   string
	Price         string
	ImageSrc      template.URL
	ImageRequired bool
	Action        string
}

type ProductsPage struct {
	Flash    *Flash
	Active   string // "products" | "config"
	Products []ProductCard
}

type ProductFormPage struct {
	Flash  *Flash
	Active string
	Title  string
	Form   ProductForm
	Errors map[string]string
}
