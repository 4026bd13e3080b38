package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/flash"
	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/http/render"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// Deps is the shared wiring for every handler.
type Deps struct {
	API   *soleapi.Client
	Flash *flash.Codec
	Sess  middleware.SessionCfg
}

// expireSession handles a backend 401 on any endpoint: the token is gone,
// clear it and send the operator back to login.
func expireSession(c *gin.Context, d Deps) {
	middleware.ClearTokenCookie(c, d.Sess)
	render.RedirectWithFlash(c, d.Flash, "/login", view.FlashWarning,
		"Tu sesión expiró. Inicia sesión de nuevo.")
}

// normalizeReturnTo only accepts same-site paths.
func normalizeReturnTo(v string) string {
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return ""
	}
	return v
}

func mapProductCards(products []soleapi.Product) []view.ProductCard {
	cards := make([]view.ProductCard, 0, len(products))
	for _, p := range products {
		card := view.ProductCard{ID: p.ID, Name: p.Name}
		if p.Description != nil {
			card.Description = *p.Description
		}
		if p.Price != nil {
			card.Price = view.Price(*p.Price)
		}
		if p.Image != nil {
			card.ImageSrc = view.ImageDataURI(*p.Image)
		}
		cards = append(cards, card)
	}
	return cards
}
