package http

import (
	"bytes"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/DAVID1990208/SOLE/internal/http/flash"
	"github.com/DAVID1990208/SOLE/internal/http/middleware"
	"github.com/DAVID1990208/SOLE/internal/soleapi"
)

// recordingBackend is a fake shop backend: it answers with whatever the test
// configures and remembers every request it saw.
type recordingBackend struct {
	mu      sync.Mutex
	reqs    []backendReq
	handler nethttp.HandlerFunc
}

type backendReq struct {
	Method string
	Path   string
	Auth   string
}

func (b *recordingBackend) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	b.mu.Lock()
	b.reqs = append(b.reqs, backendReq{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
	b.mu.Unlock()
	if b.handler != nil {
		b.handler(w, r)
		return
	}
	nethttp.NotFound(w, r)
}

func (b *recordingBackend) requests() []backendReq {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]backendReq, len(b.reqs))
	copy(out, b.reqs)
	return out
}

func newTestRouter(t *testing.T, backend *recordingBackend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Deps{
		Log:   logger,
		API:   soleapi.New(srv.URL, logger),
		Flash: flash.NewCodec([]byte("test-secret"), "sole_flash", false),
		Sess:  middleware.SessionCfg{CookieName: "sole_token", TTL: time.Hour},
	})
}

func withSession(req *nethttp.Request) *nethttp.Request {
	req.AddCookie(&nethttp.Cookie{Name: "sole_token", Value: "tok123"})
	return req
}

func productsJSON(body string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		part, err := w.CreateFormFile("image", "torta.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte{0xff, 0xd8, 0xff})
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAdminWithoutTokenRedirectsToLogin(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(nethttp.MethodGet, "/admin/products", nil))

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.True(t, strings.HasPrefix(res.Header().Get("Location"), "/login"))
	require.Empty(t, backend.requests(), "no backend call may happen without a session")
}

func TestBackendUnauthorizedClearsSession(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products", nil)))

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.Equal(t, "/login", res.Header().Get("Location"))

	cleared := false
	for _, c := range res.Header().Values("Set-Cookie") {
		if strings.HasPrefix(c, "sole_token=") && strings.Contains(c, "Max-Age=0") {
			cleared = true
		}
	}
	require.True(t, cleared, "token cookie must be cleared on 401")
}

func TestEmptyProductListRendersPlaceholder(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(`[]`)}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products", nil)))

	require.Equal(t, nethttp.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "No hay productos todavía.")
	require.NotContains(t, res.Body.String(), "product-card")
}

func TestProductCardFormatsPrice(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(
		`[{"id":1,"name":"Torta","description":"De chocolate","price":9.5,"image":null}]`)}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products", nil)))

	require.Equal(t, nethttp.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "$9.50")
	require.Contains(t, body, "Torta")
	require.Contains(t, body, "De chocolate")
}

func TestCreateFormRequiresImage(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products/new", nil)))

	require.Equal(t, nethttp.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `name="image" accept="image/*" required`)
}

func TestEditFormPopulatesAndImageOptional(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(
		`[{"id":7,"name":"Torta","description":"Rica","price":9.5,"image":"aGVsbG8="}]`)}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products/7/edit", nil)))

	require.Equal(t, nethttp.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, `value="Torta"`)
	require.Contains(t, body, `value="9.5"`)
	require.Contains(t, body, "Rica")
	require.Contains(t, body, "data:image;base64,aGVsbG8=")
	require.NotContains(t, body, `accept="image/*" required`)

	reqs := backend.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "GET", reqs[0].Method)
	require.Equal(t, "/api/products", reqs[0].Path, "edit re-fetches the list, no single-item endpoint")
}

func TestEditFormUnknownIDRedirectsWithError(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(`[]`)}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/products/99/edit", nil)))

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.Equal(t, "/admin/products", res.Header().Get("Location"))
}

func TestCreatePostsToProductsEndpoint(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(`{"id":5,"message":"ok"}`)}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Torta", "price": "9.5"}, true)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.Equal(t, "/admin/products", res.Header().Get("Location"))

	reqs := backend.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "POST", reqs[0].Method)
	require.Equal(t, "/api/products", reqs[0].Path)
	require.Equal(t, "Bearer tok123", reqs[0].Auth)
}

func TestUpdatePutsToProductID(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(`{"message":"ok"}`)}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Torta"}, false)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products/7", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusFound, res.Code)

	reqs := backend.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "PUT", reqs[0].Method)
	require.Equal(t, "/api/products/7", reqs[0].Path)
}

func TestCreateWithoutImageShowsFieldError(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Torta"}, false)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "La imagen es obligatoria.")
	require.Empty(t, backend.requests())
}

func TestSaveFailureSurfacesBackendDetail(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"name taken"}`))
	}}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Torta"}, true)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "name taken")
}

func TestSaveFailureWithoutJSONShowsFallback(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Torta"}, true)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Contains(t, res.Body.String(), "No se pudo crear el producto.")
}

func TestDeleteCallsBackendAndReloads(t *testing.T) {
	backend := &recordingBackend{handler: productsJSON(`{"message":"ok"}`)}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products/5/delete", nil)))

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.Equal(t, "/admin/products", res.Header().Get("Location"))

	reqs := backend.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "DELETE", reqs[0].Method)
	require.Equal(t, "/api/products/5", reqs[0].Path)
}

func TestLoginSetsTokenCookieAndRedirects(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		require.Equal(t, "/api/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	}}
	r := newTestRouter(t, backend)

	form := url.Values{"username": {"sole"}, "password": {"secret"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusFound, res.Code)
	require.Equal(t, "/admin", res.Header().Get("Location"))

	var got string
	for _, c := range res.Header().Values("Set-Cookie") {
		if strings.HasPrefix(c, "sole_token=") {
			got = c
		}
	}
	require.Contains(t, got, "sole_token=tok123")
	require.Contains(t, got, "HttpOnly")
}

func TestLoginBadCredentialsRendersInline(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}}
	r := newTestRouter(t, backend)

	form := url.Values{"username": {"sole"}, "password": {"wrong"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "Incorrect username or password")

	for _, c := range res.Header().Values("Set-Cookie") {
		require.False(t, strings.HasPrefix(c, "sole_token="), "no session on failed login")
	}
}

func TestConfigTabReadsWithoutAuthWritesWithAuth(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == nethttp.MethodGet {
			_, _ = w.Write([]byte(`{"primary_color":"#ff6b9d","background_color":"#fff5f8","product_bg_color":"#ffffff","whatsapp_number":"1121820759"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Configuration updated successfully"}`))
	}}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, withSession(httptest.NewRequest(nethttp.MethodGet, "/admin/config", nil)))
	require.Equal(t, nethttp.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "#ff6b9d")

	form := url.Values{
		"primary_color":    {"#000000"},
		"background_color": {"#ffffff"},
		"product_bg_color": {"#eeeeee"},
		"whatsapp_number":  {"123"},
	}
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/config", strings.NewReader(form.Encode())))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res = httptest.NewRecorder()
	r.ServeHTTP(res, req)
	require.Equal(t, nethttp.StatusFound, res.Code)

	reqs := backend.requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "GET", reqs[0].Method)
	require.Empty(t, reqs[0].Auth, "config read carries no Authorization header")
	require.Equal(t, "PUT", reqs[1].Method)
	require.Equal(t, "/api/config", reqs[1].Path)
	require.Equal(t, "Bearer tok123", reqs[1].Auth)
}

func TestPanicRendersErrorPage(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRouter(t, backend)
	r.GET("/panics", func(c *gin.Context) {
		panic("boom")
	})

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(nethttp.MethodGet, "/panics", nil))

	require.Equal(t, nethttp.StatusInternalServerError, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "500")
	require.Contains(t, body, "Ocurrió un error inesperado.")
}

func TestFailedEditSaveKeepsImagePreview(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == nethttp.MethodGet {
			_, _ = w.Write([]byte(`[{"id":7,"name":"Torta","description":null,"price":9.5,"image":"aGVsbG8="}]`))
			return
		}
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"name taken"}`))
	}}
	r := newTestRouter(t, backend)

	body, ct := multipartBody(t, map[string]string{"name": "Otra"}, false)
	req := withSession(httptest.NewRequest(nethttp.MethodPost, "/admin/products/7", body))
	req.Header.Set("Content-Type", ct)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	require.Equal(t, nethttp.StatusBadRequest, res.Code)
	got := res.Body.String()
	require.Contains(t, got, "name taken")
	require.Contains(t, got, "data:image;base64,aGVsbG8=", "stored image preview survives the retry render")
}

func TestHomeRendersStorefront(t *testing.T) {
	backend := &recordingBackend{handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/config":
			_, _ = w.Write([]byte(`{"primary_color":"#ff6b9d","background_color":"#fff5f8","product_bg_color":"#ffffff","whatsapp_number":"1121820759"}`))
		case "/api/products":
			_, _ = w.Write([]byte(`[{"id":1,"name":"Torta","description":null,"price":9.5,"image":null}]`))
		}
	}}
	r := newTestRouter(t, backend)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(nethttp.MethodGet, "/", nil))

	require.Equal(t, nethttp.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "$9.50")
	require.Contains(t, body, "wa.me/1121820759")
	require.Contains(t, body, "#fff5f8")
}
