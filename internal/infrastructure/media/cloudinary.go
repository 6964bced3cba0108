package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// Verificar en tiempo de compilación que Cloudinary implementa ImageStore.
var _ ports.ImageStore = (*Cloudinary)(nil)

const (
	defaultAPIBase      = "https://api.cloudinary.com/v1_1"
	defaultDeliveryHost = "res.cloudinary.com"
)

// Config credenciales y política de reintentos del adaptador.
type Config struct {
	CloudName  string
	APIKey     string
	APISecret  string
	Timeout    time.Duration // por intento
	MaxRetries int           // reintentos ante 5xx o fallo de red
	Backoff    time.Duration // espera lineal: intento * Backoff
	APIBase    string        // solo tests; por defecto la API pública
}

// Cloudinary adaptador de ImageStore sobre la API REST de Cloudinary (upload y destroy firmados).
// Usa net/http de la librería estándar; no requiere el SDK oficial.
type Cloudinary struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
	log        *logger.Logger
}

// NewCloudinary construye el adaptador.
func NewCloudinary(cfg Config, log *logger.Logger) *Cloudinary {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if log == nil {
		log = logger.Nop()
	}
	return &Cloudinary{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
		log:        log.Named("media"),
	}
}

// RetryBudget tiempo máximo que puede tomar una llamada con todos sus reintentos.
func (c *Cloudinary) RetryBudget() time.Duration {
	total := c.cfg.Timeout * time.Duration(c.cfg.MaxRetries+1)
	for i := 1; i <= c.cfg.MaxRetries; i++ {
		total += c.cfg.Backoff * time.Duration(i)
	}
	return total
}

type apiResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Result    string `json:"result"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sube img a folder y devuelve la secure_url.
func (c *Cloudinary) Upload(ctx context.Context, img ports.Image, folder string) (string, error) {
	params := map[string]string{"timestamp": c.timestamp()}
	if folder != "" {
		params["folder"] = folder
	}
	body, contentType, err := c.multipartBody(params, &img)
	if err != nil {
		return "", err
	}
	resp, err := c.post(ctx, "upload", body, contentType)
	if err != nil {
		return "", err
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary: respuesta sin secure_url")
	}
	return resp.SecureURL, nil
}

// Delete elimina la imagen identificada por su URL de entrega.
// Las URLs de otros hosts o de otra cuenta devuelven (false, nil).
func (c *Cloudinary) Delete(ctx context.Context, rawURL string) (bool, error) {
	publicID, ok := PublicID(rawURL, c.cfg.CloudName)
	if !ok {
		return false, nil
	}
	params := map[string]string{"public_id": publicID, "timestamp": c.timestamp()}
	body, contentType, err := c.multipartBody(params, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.post(ctx, "destroy", body, contentType)
	if err != nil {
		return false, err
	}
	// "not found": ya no existe, nada que borrar.
	return resp.Result == "ok", nil
}

func (c *Cloudinary) timestamp() string {
	return strconv.FormatInt(c.now().Unix(), 10)
}

// Sign firma los parámetros: sha1 de "k1=v1&k2=v2..." (claves ordenadas) concatenado con el secreto.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func (c *Cloudinary) multipartBody(params map[string]string, img *ports.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"api_key":   c.cfg.APIKey,
		"signature": Sign(params, c.cfg.APISecret),
	}
	for k, v := range params {
		fields[k] = v
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("cloudinary: armar formulario: %w", err)
		}
	}
	if img != nil {
		name := img.Filename
		if name == "" {
			name = "foto"
		}
		part, err := w.CreateFormFile("file", name)
		if err != nil {
			return nil, "", fmt.Errorf("cloudinary: armar formulario: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("cloudinary: armar formulario: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("cloudinary: armar formulario: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// post envía a /{cloud}/image/{action}, reintentando fallos de red y respuestas 5xx.
func (c *Cloudinary) post(ctx context.Context, action string, body []byte, contentType string) (*apiResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/image/%s", c.cfg.APIBase, url.PathEscape(c.cfg.CloudName), action)
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.cfg.Backoff * time.Duration(attempt)
			c.log.Warn().Err(lastErr).Str("action", action).Int("attempt", attempt).Dur("wait", wait).Msg("reintentando llamada al host de imágenes")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("cloudinary: %w (último error: %v)", ctx.Err(), lastErr)
			case <-time.After(wait):
			}
		}
		resp, retry, err := c.do(ctx, endpoint, body, contentType)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Cloudinary) do(ctx context.Context, endpoint string, body []byte, contentType string) (*apiResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("cloudinary: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("cloudinary: timeout o cancelación: %w", ctx.Err())
		}
		return nil, true, fmt.Errorf("cloudinary: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, true, fmt.Errorf("cloudinary: leer respuesta: %w", err)
	}

	var out apiResponse
	jsonErr := json.Unmarshal(raw, &out)
	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode >= 500
		if jsonErr == nil && out.Error != nil {
			return nil, retry, fmt.Errorf("cloudinary HTTP %d: %s", resp.StatusCode, out.Error.Message)
		}
		return nil, retry, fmt.Errorf("cloudinary HTTP %d: %s", resp.StatusCode, string(raw))
	}
	if jsonErr != nil {
		return nil, false, fmt.Errorf("cloudinary: deserializar respuesta: %w", jsonErr)
	}
	if out.Error != nil {
		return nil, false, fmt.Errorf("cloudinary: %s", out.Error.Message)
	}
	return &out, false, nil
}

// PublicID extrae el public_id de una URL de entrega de la cuenta cloudName:
// https://res.cloudinary.com/<cloud>/image/upload/[transformaciones/][v123/]carpeta/nombre.ext → carpeta/nombre.
func PublicID(rawURL, cloudName string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != defaultDeliveryHost {
		return "", false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 4 || segs[0] != cloudName {
		return "", false
	}
	i := 1
	for i < len(segs) && segs[i] != "upload" {
		i++
	}
	i++
	if i >= len(segs) {
		return "", false
	}
	rest := segs[i:]
	// Con versión (v123), el public_id es todo lo que sigue; sin ella se descartan transformaciones (w_100,c_fill).
	versioned := false
	for j := 0; j < len(rest)-1; j++ {
		if isVersion(rest[j]) {
			rest = rest[j+1:]
			versioned = true
			break
		}
	}
	if !versioned {
		for len(rest) > 1 && isTransformation(rest[0]) {
			rest = rest[1:]
		}
	}
	id := strings.Join(rest, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" {
		return "", false
	}
	return id, true
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	_, err := strconv.ParseUint(seg[1:], 10, 64)
	return err == nil
}

// isTransformation reconoce segmentos tipo "w_100", "c_fill" o "c_fill,w_100".
func isTransformation(seg string) bool {
	for _, part := range strings.Split(seg, ",") {
		prefix, _, ok := strings.Cut(part, "_")
		if !ok || len(prefix) == 0 || len(prefix) > 2 {
			return false
		}
	}
	return true
}
