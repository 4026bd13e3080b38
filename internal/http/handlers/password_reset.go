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

type PasswordHandler struct {
	Deps
}

func NewPasswordHandler(d Deps) *PasswordHandler {
	return &PasswordHandler{Deps: d}
}

type forgotInput struct {
	Email string `form:"email" binding:"required,email"`
}

type resetInput struct {
	Token           string `form:"token" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=NewPassword"`
}

func (h *PasswordHandler) ForgotGet(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.tmpl", view.ForgotPage{
		Flash: middleware.GetFlash(c),
	})
}

func (h *PasswordHandler) ForgotPost(c *gin.Context) {
	var in forgotInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "forgot_password.tmpl", view.ForgotPage{
			Flash:  middleware.GetFlash(c),
			Email:  in.Email,
			Errors: validation.FromBindError(err, &in),
		})
		return
	}

	if err := h.API.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		c.HTML(apperr.HTTPStatus(err), "forgot_password.tmpl", view.ForgotPage{
			Flash:  middleware.GetFlash(c),
			Email:  in.Email,
			Errors: map[string]string{"_": apperr.PublicMessage(err)},
		})
		return
	}

	// Neutral answer whether or not the address exists, like the backend.
	c.HTML(http.StatusOK, "forgot_password.tmpl", view.ForgotPage{
		Flash: middleware.GetFlash(c),
		Sent:  true,
	})
}

func (h *PasswordHandler) ResetGet(c *gin.Context) {
	c.HTML(http.StatusOK, "reset_password.tmpl", view.ResetPage{
		Flash: middleware.GetFlash(c),
		Token: c.Param("token"),
	})
}

func (h *PasswordHandler) ResetPost(c *gin.Context) {
	var in resetInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "reset_password.tmpl", view.ResetPage{
			Flash:  middleware.GetFlash(c),
			Token:  c.PostForm("token"),
			Errors: validation.FromBindError(err, &in),
		})
		return
	}

	if err := h.API.ResetPassword(c.Request.Context(), in.Token, in.NewPassword); err != nil {
		c.HTML(apperr.HTTPStatus(err), "reset_password.tmpl", view.ResetPage{
			Flash:   middleware.GetFlash(c),
			Token:   in.Token,
			PageMsg: apperr.PublicMessage(err),
		})
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashSuccess,
		"Contraseña restablecida. Ya puedes iniciar sesión.")
}
