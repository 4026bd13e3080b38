package soleapi

import "io"

// Product as served by GET /api/products. The backend owns the record; this
// client only holds a transient copy for a render or an edit session.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"` // base64
}

// SiteConfig is the singleton configuration record, read and replaced wholesale.
type SiteConfig struct {
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
	ProductBgColor  string `json:"product_bg_color"`
	WhatsappNumber  string `json:"whatsapp_number"`
}

// Upload is the image file forwarded unmodified to the backend.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// ProductInput is the multipart payload for create/update. Image is required
// on create and optional on update; the backend keeps the stored image when
// it is absent.
type ProductInput struct {
	Name        string
	Description string
	Price       *float64
	Image       *Upload
}
