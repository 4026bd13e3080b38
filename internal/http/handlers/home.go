package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// HomeHandler renders the public storefront: the product grid styled with
// the configured colors, plus WhatsApp order links.
type HomeHandler struct {
	Deps
}

func NewHomeHandler(d Deps) *HomeHandler {
	return &HomeHandler{Deps: d}
}

func (h *HomeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	cfg, err := h.API.GetSiteConfig(ctx)
	if err != nil {
		// Fall back to the backend's defaults so the page still renders.
		cfg = soleapi.SiteConfig{
			PrimaryColor:    "#ff6b9d",
			BackgroundColor: "#fff5f8",
			ProductBgColor:  "#ffffff",
		}
	}

	page := view.HomePage{
		Flash:           middleware.GetFlash(c),
		PrimaryColor:    cfg.PrimaryColor,
		BackgroundColor: cfg.BackgroundColor,
		ProductBgColor:  cfg.ProductBgColor,
		WhatsappLink:    view.WhatsappLink(cfg.WhatsappNumber, "¡Hola! Quiero hacer un pedido"),
	}

	products, err := h.API.ListProducts(ctx, "")
	if err != nil {
		page.LoadError = "No se pudieron cargar los productos."
	} else {
		page.Products = mapProductCards(products)
	}

	c.HTML(http.StatusOK, "home.tmpl", page)
}
