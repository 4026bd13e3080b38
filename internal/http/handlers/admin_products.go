package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/http/render"
	"github.com/DAVID1990208/SOLE/internal/http/validation"
	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// ProductsHandler drives the products tab: the card list plus the
// create/edit form. Whether a save creates or updates is decided by the
// route alone, there is no shared edit state.
type ProductsHandler struct {
	Deps
}

func NewProductsHandler(d Deps) *ProductsHandler {
	return &ProductsHandler{Deps: d}
}

type productFormInput struct {
	Name        string `form:"name" binding:"required,max=120"`
	Description string `form:"description" binding:"omitempty,max=2000"`
	Price       string `form:"price"`
}

// List re-fetches on every visit; the tab carries no cache.
func (h *ProductsHandler) List(c *gin.Context) {
	token, _ := middleware.Token(c)

	products, err := h.API.ListProducts(c.Request.Context(), token)
	if errors.Is(err, soleapi.ErrUnauthorized) {
		expireSession(c, h.Deps)
		return
	}
	if err != nil {
		c.HTML(apperr.HTTPStatus(err), "admin_products.tmpl", view.ProductsPage{
			Flash:  &view.Flash{Kind: view.FlashError, Message: apperr.PublicMessage(err)},
			Active: "products",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_products.tmpl", view.ProductsPage{
		Flash:    middleware.GetFlash(c),
		Active:   "products",
		Products: mapProductCards(products),
	})
}

func (h *ProductsHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_product_form.tmpl", view.ProductFormPage{
		Flash:  middleware.GetFlash(c),
		Active: "products",
		Title:  "Nuevo Producto",
		Form: view.ProductForm{
			ImageRequired: true,
			Action:        "/admin/products",
		},
	})
}

// EditForm re-fetches the whole list and picks the id out of it: the backend
// has no single-product read.
func (h *ProductsHandler) EditForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Producto no encontrado."))
		return
	}
	token, _ := middleware.Token(c)

	products, err := h.API.ListProducts(c.Request.Context(), token)
	if errors.Is(err, soleapi.ErrUnauthorized) {
		expireSession(c, h.Deps)
		return
	}
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError, apperr.PublicMessage(err))
		return
	}

	var found *soleapi.Product
	for i := range products {
		if products[i].ID == id {
			found = &products[i]
			break
		}
	}
	if found == nil {
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError, "Producto no encontrado.")
		return
	}

	form := view.ProductForm{
		EditID: id,
		Name:   found.Name,
		Action: fmt.Sprintf("/admin/products/%d", id),
	}
	if found.Description != nil {
		form.Description = *found.Description
	}
	if found.Price != nil {
		form.Price = strconv.FormatFloat(*found.Price, 'f', -1, 64)
	}
	if found.Image != nil {
		form.ImageSrc = view.ImageDataURI(*found.Image)
	}

	c.HTML(http.StatusOK, "admin_product_form.tmpl", view.ProductFormPage{
		Flash:  middleware.GetFlash(c),
		Active: "products",
		Title:  "Editar Producto",
		Form:   form,
	})
}

func (h *ProductsHandler) Create(c *gin.Context) {
	h.save(c, 0)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Producto no encontrado."))
		return
	}
	h.save(c, id)
}

// save handles both create (editID == 0) and update. The image is forwarded
// to the backend as an opaque blob; it is required only on create.
func (h *ProductsHandler) save(c *gin.Context, editID int) {
	token, _ := middleware.Token(c)

	var in productFormInput
	formErrs := validation.FieldErrors{}
	if err := c.ShouldBind(&in); err != nil {
		formErrs = validation.FromBindError(err, &in)
	}

	input := soleapi.ProductInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if p := strings.TrimSpace(in.Price); p != "" {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			formErrs["price"] = "Ingresa un precio válido."
		} else {
			input.Price = &v
		}
	}

	fh, fileErr := c.FormFile("image")
	if fileErr != nil && editID == 0 {
		formErrs["image"] = "La imagen es obligatoria."
	}

	if len(formErrs) > 0 {
		h.renderFormAgain(c, editID, in, nil, formErrs, http.StatusBadRequest)
		return
	}

	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		defer f.Close()
		input.Image = &soleapi.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		}
	}

	var err error
	var okMsg string
	if editID == 0 {
		err = h.API.CreateProduct(c.Request.Context(), token, input)
		okMsg = "Producto creado correctamente."
	} else {
		err = h.API.UpdateProduct(c.Request.Context(), token, editID, input)
		okMsg = "Producto actualizado correctamente."
	}

	if errors.Is(err, soleapi.ErrUnauthorized) {
		expireSession(c, h.Deps)
		return
	}
	if err != nil {
		// Backend {detail} surfaces verbatim; the form stays on screen.
		h.renderFormAgain(c, editID, in,
			&view.Flash{Kind: view.FlashError, Message: apperr.PublicMessage(err)},
			nil, apperr.HTTPStatus(err))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashSuccess, okMsg)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Producto no encontrado."))
		return
	}
	token, _ := middleware.Token(c)

	err = h.API.DeleteProduct(c.Request.Context(), token, id)
	if errors.Is(err, soleapi.ErrUnauthorized) {
		expireSession(c, h.Deps)
		return
	}
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashError, "No se pudo eliminar el producto.")
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/products", view.FlashSuccess, "Producto eliminado.")
}

func (h *ProductsHandler) renderFormAgain(c *gin.Context, editID int, in productFormInput, fl *view.Flash, errs validation.FieldErrors, status int) {
	form := view.ProductForm{
		EditID:        editID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		ImageRequired: editID == 0,
		Action:        "/admin/products",
	}
	title := "Nuevo Producto"
	if editID != 0 {
		form.Action = fmt.Sprintf("/admin/products/%d", editID)
		title = "Editar Producto"
		form.ImageSrc = h.storedImage(c, editID)
	}
	if fl == nil {
		fl = middleware.GetFlash(c)
	}
	c.HTML(status, "admin_product_form.tmpl", view.ProductFormPage{
		Flash:  fl,
		Active: "products",
		Title:  title,
		Form:   form,
		Errors: errs,
	})
}

// storedImage recovers the current image for the retry render of a failed
// edit save. Best effort: when the list cannot be fetched the form simply
// loses its preview, never the save itself.
func (h *ProductsHandler) storedImage(c *gin.Context, id int) template.URL {
	token, _ := middleware.Token(c)
	products, err := h.API.ListProducts(c.Request.Context(), token)
	if err != nil {
		return ""
	}
	for i := range products {
		if products[i].ID == id && products[i].Image != nil {
			return view.ImageDataURI(*products[i].Image)
		}
	}
	return ""
}
