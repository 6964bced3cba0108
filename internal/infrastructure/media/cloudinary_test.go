package media_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/media"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ─── Helpers ─────────────────────────────────────────────────────────────────

func newClient(t *testing.T, h http.HandlerFunc) *media.Cloudinary {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return media.NewCloudinary(media.Config{
		CloudName:  "demo",
		APIKey:     "key123",
		APISecret:  "secreto",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		Backoff:    time.Millisecond,
		APIBase:    srv.URL,
	}, logger.Nop())
}

var img = ports.Image{Data: []byte("\x89PNG\r\n\x1a\n"), ContentType: "image/png", Filename: "foto.png"}

// ─── Upload ──────────────────────────────────────────────────────────────────

func TestUpload_DevuelveSecureURLFirmada(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.Equal(t, "catalogo/productos", r.FormValue("folder"))
		ts := r.FormValue("timestamp")
		require.NotEmpty(t, ts)
		want := media.Sign(map[string]string{"folder": "catalogo/productos", "timestamp": ts}, "secreto")
		assert.Equal(t, want, r.FormValue("signature"))
		file, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "foto.png", hdr.Filename)
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/catalogo/productos/x.png"}`))
	})

	url, err := c.Upload(context.Background(), img, "catalogo/productos")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/catalogo/productos/x.png", url)
}

func TestUpload_ReintentaAnte5xx(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/a.png"}`))
	})

	_, err := c.Upload(context.Background(), img, "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestUpload_NoReintentaAnte4xx(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := c.Upload(context.Background(), img, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpload_AgotaReintentos(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Upload(context.Background(), img, "")
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load(), "intento inicial + 2 reintentos")
}

// ─── Delete ──────────────────────────────────────────────────────────────────

func TestDelete_EnviaPublicID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "catalogo/productos/abc", r.FormValue("public_id"))
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	})

	ok, err := c.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1712/catalogo/productos/abc.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete_NoEncontradaNoEsError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"not found"}`))
	})

	ok, err := c.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_URLAjenaNoLlamaAlHost(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	ok, err := c.Delete(context.Background(), "https://images.example.com/foto.png")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, calls.Load())
}

// ─── PublicID / Sign ─────────────────────────────────────────────────────────

func TestPublicID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712/prueba/productos/abc.jpg", "prueba/productos/abc", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_100/v1712/mi_carpeta/abc.png", "mi_carpeta/abc", true},
		{"https://res.cloudinary.com/demo/image/upload/w_100/abc.png", "abc", true},
		{"https://res.cloudinary.com/demo/image/upload/abc.png", "abc", true},
		{"https://res.cloudinary.com/otra/image/upload/v1/abc.png", "", false},
		{"https://example.com/demo/image/upload/v1/abc.png", "", false},
		{"no es una url", "", false},
	}
	for _, tc := range cases {
		got, ok := media.PublicID(tc.url, "demo")
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.want, got, tc.url)
	}
}

func TestSign_OmiteVaciosYOrdena(t *testing.T) {
	sum := sha1.Sum([]byte("folder=catalogo&timestamp=1315060510" + "abcd"))
	want := hex.EncodeToString(sum[:])

	got := media.Sign(map[string]string{"timestamp": "1315060510", "folder": "catalogo", "tags": ""}, "abcd")
	assert.Equal(t, want, got)
}

func TestRetryBudget(t *testing.T) {
	c := media.NewCloudinary(media.Config{Timeout: time.Second, MaxRetries: 2, Backoff: 100 * time.Millisecond}, nil)
	assert.Equal(t, 3*time.Second+300*time.Millisecond, c.RetryBudget())
}
