package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

// Doer is the injected network transport, satisfied by *http.Client.
type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

func NewHttpClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("%s %s status %d: %s", err.Method, err.Path, err.Code, err.Body)
}

// Http is a small REST helper shared by the HTTP based plugins.
type Http struct {
	client  Doer
	api     string
	headers map[string]string
	limiter *rate.Limiter
	timeout time.Duration
}

func NewHttp(settings Settings, defaultUrl string) *Http {
	api := settings.Url
	if api == "" {
		api = defaultUrl
	}
	h := &Http{
		client:  settings.Client,
		api:     strings.TrimSuffix(api, "/"),
		headers: make(map[string]string),
		timeout: settings.Timeout,
	}
	if settings.RateLimit > 0 {
		burst := max(int(settings.RateLimit), 1)
		h.limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), burst)
	}
	return h
}

func (h *Http) Url() string {
	return h.api
}

func (h *Http) SetHeader(key, value string) {
	h.headers[key] = value
}

func (h *Http) do(ctx context.Context, method string, path string, contentType string, body io.Reader) (int, []byte, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, h.api+path, body)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	for key, value := range h.headers {
		request.Header.Set(key, value)
	}

	res, err := h.client.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.Errorf("Error closing response body: %v", err)
		}
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	logger.Sillyf("%s %s%s: %d %s", method, h.api, path, res.StatusCode, string(raw))
	return res.StatusCode, raw, nil
}

// Get performs a GET request and returns the body. Non 200 responses yield a *StatusError.
func (h *Http) Get(ctx context.Context, path string) ([]byte, error) {
	code, body, err := h.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, Path: path, Code: code, Body: string(body)}
	}
	return body, nil
}

// GetJson performs a GET request and decodes the JSON response into dest
func (h *Http) GetJson(ctx context.Context, path string, dest any) error {
	body, err := h.Get(ctx, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

// Post returns the status code along with the body so callers can tell rejections apart from transport errors.
func (h *Http) Post(ctx context.Context, path string, contentType string, body []byte) (int, []byte, error) {
	return h.do(ctx, http.MethodPost, path, contentType, bytes.NewReader(body))
}

func (h *Http) PostJson(ctx context.Context, path string, request any) (int, []byte, error) {
	raw, err := json.Marshal(request)
	if err != nil {
		return 0, nil, err
	}
	return h.Post(ctx, path, "application/json", raw)
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// ErrorMessage extracts a human readable message from a provider error body.
func ErrorMessage(code int, body []byte) string {
	var parsed struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			return parsed.Detail
		case parsed.Message != "":
			return parsed.Message
		case parsed.Error != nil:
			if msg, ok := parsed.Error.(string); ok && msg != "" {
				return msg
			}
			return fmt.Sprint(parsed.Error)
		case parsed.Title != "":
			return parsed.Title
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("failed with status %d", code)
	}
	return text
}
