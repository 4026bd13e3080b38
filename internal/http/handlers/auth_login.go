package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/http/render"
	"github.com/DAVID1990208/SOLE/internal/http/validation"
	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

type LoginHandler struct {
	Deps
}

func NewLoginHandler(d Deps) *LoginHandler {
	return &LoginHandler{Deps: d}
}

type loginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *LoginHandler) Get(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", view.LoginPage{
		Flash:    middleware.GetFlash(c),
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	})
}

func (h *LoginHandler) Post(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", view.LoginPage{
			Flash:    middleware.GetFlash(c),
			ReturnTo: returnTo,
			Username: in.Username,
			Errors:   validation.FromBindError(err, &in),
		})
		return
	}

	token, err := h.API.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		// Bad credentials render inline on the same page; everything else
		// (backend down, 5xx) gets the same treatment with its own message.
		c.HTML(apperr.HTTPStatus(err), "login.tmpl", view.LoginPage{
			Flash:    middleware.GetFlash(c),
			ReturnTo: returnTo,
			Username: in.Username,
			PageMsg:  apperr.PublicMessage(err),
		})
		return
	}

	middleware.SetTokenCookie(c, h.Sess, token)

	dest := "/admin"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Sesión iniciada.")
}

func (h *LoginHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c, h.Sess)
	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashInfo, "Sesión cerrada.")
}
