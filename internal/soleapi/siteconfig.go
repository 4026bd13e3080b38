package soleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
)

// GetSiteConfig reads the singleton record. The backend serves this read
// openly and the original dashboard never attached a token here, so neither
// does this client.
func (c *Client) GetSiteConfig(ctx context.Context) (SiteConfig, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/config", "", nil)
	if err != nil {
		return SiteConfig{}, apperr.Wrap(err)
	}
	res, err := c.do(req, "No se pudo cargar la configuración.")
	if err != nil {
		return SiteConfig{}, err
	}
	defer res.Body.Close()

	var out SiteConfig
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return SiteConfig{}, apperr.Wrap(fmt.Errorf("decode config: %w", err))
	}
	return out, nil
}

// UpdateSiteConfig replaces the record wholesale.
func (c *Client) UpdateSiteConfig(ctx context.Context, token string, cfg SiteConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return apperr.Wrap(err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/api/config", token, bytes.NewReader(payload))
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req, "No se pudo guardar la configuración.")
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}
