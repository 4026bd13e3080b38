// Package http wires the console's routes: the public storefront, the auth
// pages and the admin panel (products + config), guarded by the token cookie.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/flash"
	"github.com/DAVID1990208/SOLE/internal/http/handlers"
	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
	"github.com/DAVID1990208/SOLE/web/templates"
)

type Deps struct {
	Log   *slog.Logger
	API   *soleapi.Client
	Flash *flash.Codec
	Sess  middleware.SessionCfg
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(templates.Must())

	// ErrorHandler must wrap Recovery: the recovery handle only records the
	// panic as an error, and the rendering happens on the way back out.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.ErrorHandler(d.Log),
		middleware.Recovery(d.Log),
		middleware.FlashMiddleware(d.Flash),
		middleware.TokenMiddleware(d.Sess),
	)

	hd := handlers.Deps{API: d.API, Flash: d.Flash, Sess: d.Sess}
	home := handlers.NewHomeHandler(hd)
	login := handlers.NewLoginHandler(hd)
	password := handlers.NewPasswordHandler(hd)
	products := handlers.NewProductsHandler(hd)
	siteConfig := handlers.NewConfigHandler(hd)

	r.GET("/", home.Get)

	r.GET("/login", login.Get)
	r.POST("/login", login.Post)
	r.POST("/logout", login.Logout)
	r.GET("/forgot-password", password.ForgotGet)
	r.POST("/forgot-password", password.ForgotPost)
	r.GET("/reset-password/:token", password.ResetGet)
	r.POST("/reset-password", password.ResetPost)

	admin := r.Group("/admin", middleware.RequireToken(d.Flash))
	admin.GET("", func(c *gin.Context) {
		c.Redirect(nethttp.StatusFound, "/admin/products")
	})
	admin.GET("/products", products.List)
	admin.GET("/products/new", products.NewForm)
	admin.POST("/products", products.Create)
	admin.GET("/products/:id/edit", products.EditForm)
	admin.POST("/products/:id", products.Update)
	admin.POST("/products/:id/delete", products.Delete)
	admin.GET("/config", siteConfig.Show)
	admin.POST("/config", siteConfig.Save)

	return r
}
