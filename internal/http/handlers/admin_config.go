package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/http/render"
	"github.com/DAVID1990208/SOLE/internal/http/validation"
	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// ConfigHandler drives the config tab: the singleton record is read without
// auth and written with it, mirroring the backend's asymmetry.
type ConfigHandler struct {
	Deps
}

func NewConfigHandler(d Deps) *ConfigHandler {
	return &ConfigHandler{Deps: d}
}

type configFormInput struct {
	PrimaryColor    string `form:"primary_color" binding:"required"`
	BackgroundColor string `form:"background_color" binding:"required"`
	ProductBgColor  string `form:"product_bg_color" binding:"required"`
	WhatsappNumber  string `form:"whatsapp_number"`
}

func (h *ConfigHandler) Show(c *gin.Context) {
	cfg, err := h.API.GetSiteConfig(c.Request.Context())
	if err != nil {
		c.HTML(apperr.HTTPStatus(err), "admin_config.tmpl", view.ConfigPage{
			Flash:  &view.Flash{Kind: view.FlashError, Message: apperr.PublicMessage(err)},
			Active: "config",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_config.tmpl", view.ConfigPage{
		Flash:  middleware.GetFlash(c),
		Active: "config",
		Form: view.SiteConfigForm{
			PrimaryColor:    cfg.PrimaryColor,
			BackgroundColor: cfg.BackgroundColor,
			ProductBgColor:  cfg.ProductBgColor,
			WhatsappNumber:  cfg.WhatsappNumber,
		},
	})
}

func (h *ConfigHandler) Save(c *gin.Context) {
	token, _ := middleware.Token(c)

	var in configFormInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "admin_config.tmpl", view.ConfigPage{
			Flash:  middleware.GetFlash(c),
			Active: "config",
			Form: view.SiteConfigForm{
				PrimaryColor:    in.PrimaryColor,
				BackgroundColor: in.BackgroundColor,
				ProductBgColor:  in.ProductBgColor,
				WhatsappNumber:  in.WhatsappNumber,
			},
			Errors: validation.FromBindError(err, &in),
		})
		return
	}

	err := h.API.UpdateSiteConfig(c.Request.Context(), token, soleapi.SiteConfig{
		PrimaryColor:    in.PrimaryColor,
		BackgroundColor: in.BackgroundColor,
		ProductBgColor:  in.ProductBgColor,
		WhatsappNumber:  in.WhatsappNumber,
	})
	if errors.Is(err, soleapi.ErrUnauthorized) {
		expireSession(c, h.Deps)
		return
	}
	if err != nil {
		c.HTML(apperr.HTTPStatus(err), "admin_config.tmpl", view.ConfigPage{
			Flash:  &view.Flash{Kind: view.FlashError, Message: apperr.PublicMessage(err)},
			Active: "config",
			Form: view.SiteConfigForm{
				PrimaryColor:    in.PrimaryColor,
				BackgroundColor: in.BackgroundColor,
				ProductBgColor:  in.ProductBgColor,
				WhatsappNumber:  in.WhatsappNumber,
			},
		})
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/config", view.FlashSuccess, "Configuración guardada.")
}
