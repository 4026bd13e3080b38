package soleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
)

// Login exchanges credentials for a bearer token. A 401 here means bad
// credentials, not an expired session, so it maps to an Unauthorized
// apperr for inline display instead of ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	res, err := c.postJSON(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", apperr.UnavailableErr(connectMsg, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		msg := readDetail(res)
		if msg == "" {
			msg = "Usuario o contraseña incorrectos."
		}
		return "", apperr.UnauthorizedErr(msg)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", failureFrom(res, "No se pudo iniciar sesión.")
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil || out.AccessToken == "" {
		return "", apperr.Wrap(fmt.Errorf("login: missing access_token (%v)", err))
	}
	return out.AccessToken, nil
}

// ForgotPassword asks the backend to mail a reset link. The backend answers
// neutrally whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	res, err := c.postJSON(ctx, "/api/forgot-password", map[string]string{"email": email})
	if err != nil {
		return apperr.UnavailableErr(connectMsg, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return failureFrom(res, "No se pudo procesar la solicitud.")
	}
	return nil
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	res, err := c.postJSON(ctx, "/api/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	})
	if err != nil {
		return apperr.UnavailableErr(connectMsg, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return failureFrom(res, "No se pudo restablecer la contraseña.")
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpc.Do(req)
}
