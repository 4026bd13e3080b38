// Package soleapi is the typed client for the shop backend REST API.
// Every operation is a single request/response round trip; there are no
// retries and no caching.
package soleapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
)

// ErrUnauthorized is returned when a protected endpoint answers 401: the
// stored token expired or was revoked. Callers must clear the session and
// send the operator back to the login page.
var ErrUnauthorized = errors.New("soleapi: token rejected by backend")

const connectMsg = "Error de conexión con el servidor."

type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

func New(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do runs the request and maps failures to the two-level taxonomy:
// transport errors become one generic connection message, 401 becomes
// ErrUnauthorized, any other non-2xx surfaces the body's detail field or
// falls back to the per-operation message.
func (c *Client) do(req *http.Request, fallback string) (*http.Response, error) {
	res, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("backend_unreachable",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("err", err),
		)
		return nil, apperr.UnavailableErr(connectMsg, err)
	}
	if res.StatusCode == http.StatusUnauthorized {
		res.Body.Close()
		return nil, ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, failureFrom(res, fallback)
	}
	return res, nil
}

func failureFrom(res *http.Response, fallback string) error {
	msg := readDetail(res)
	if msg == "" {
		msg = fallback
	}
	switch res.StatusCode {
	case http.StatusNotFound:
		return apperr.NotFoundErr(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.InvalidErr(msg, nil)
	case http.StatusConflict:
		return apperr.ConflictErr(msg)
	default:
		return &apperr.AppError{Kind: apperr.Internal, PublicMsg: msg}
	}
}

// readDetail extracts the JSON {detail} field, tolerating non-JSON bodies.
func readDetail(res *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&body)
	return strings.TrimSpace(body.Detail)
}
