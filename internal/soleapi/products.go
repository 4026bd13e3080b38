package soleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
)

// ListProducts fetches the full catalog. There is no single-item endpoint;
// edits re-fetch the list and pick the id out of it.
func (c *Client) ListProducts(ctx context.Context, token string) ([]Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products", token, nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	res, err := c.do(req, "No se pudieron cargar los productos.")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out []Product
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperr.Wrap(fmt.Errorf("decode products: %w", err))
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) error {
	if in.Image == nil {
		return apperr.InvalidErr("La imagen es obligatoria.", map[string]string{"image": "La imagen es obligatoria."})
	}
	return c.sendProductForm(ctx, token, http.MethodPost, "/api/products", in,
		"No se pudo crear el producto.")
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int, in ProductInput) error {
	return c.sendProductForm(ctx, token, http.MethodPut, fmt.Sprintf("/api/products/%d", id), in,
		"No se pudo actualizar el producto.")
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil)
	if err != nil {
		return apperr.Wrap(err)
	}
	res, err := c.do(req, "No se pudo eliminar el producto.")
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

func (c *Client) sendProductForm(ctx context.Context, token, method, path string, in ProductInput, fallback string) error {
	body, contentType, err := encodeProductForm(in)
	if err != nil {
		return apperr.Wrap(err)
	}
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Content-Type", contentType)

	res, err := c.do(req, fallback)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

func encodeProductForm(in ProductInput) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", in.Name); err != nil {
		return nil, "", err
	}
	if in.Description != "" {
		if err := w.WriteField("description", in.Description); err != nil {
			return nil, "", err
		}
	}
	if in.Price != nil {
		if err := w.WriteField("price", strconv.FormatFloat(*in.Price, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}
	if in.Image != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, in.Image.Filename))
		ct := in.Image.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		hdr.Set("Content-Type", ct)

		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, in.Image.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
