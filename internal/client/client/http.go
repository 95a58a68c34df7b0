package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// RefreshPath is the endpoint exchanging a refresh token for a new access token.
const RefreshPath = "/users/auth/token/refresh/"

const maxResponseSize = 10 << 20

// Multipart describes a multipart/form-data body with a single file part.
type Multipart struct {
	Fields      map[string]string
	FileField   string
	FileName    string
	ContentType string
	Data        []byte
}

// HTTPClient talks JSON to the PlanA API. An authenticated client attaches
// the stored access token and refreshes it once when the API answers 401.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenStore
	logger  logging.Logger

	now          func() time.Time
	newRequestID func() string
}

func newHTTPClient(baseURL string, hc *http.Client, limiter *rate.Limiter, tokens TokenStore, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         hc,
		limiter:      limiter,
		tokens:       tokens,
		logger:       logging.OrNop(logger),
		now:          time.Now,
		newRequestID: uuid.NewString,
	}
}

func (c *HTTPClient) authenticated() bool {
	return c.tokens != nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, payload, "application/json", out)
}

func (c *HTTPClient) Patch(ctx context.Context, path string, body, out any) error {
	payload, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, payload, "application/json", out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *HTTPClient) PostMultipart(ctx context.Context, path string, form Multipart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range form.Fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	if form.FileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, form.FileField, form.FileName))
		ct := form.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("multipart file: %w", err)
		}
		if _, err := part.Write(form.Data); err != nil {
			return fmt.Errorf("multipart file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("multipart close: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, buf.Bytes(), w.FormDataContentType(), out)
}

func encodeJSON(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return b, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte, contentType string, out any) error {
	var tokens Tokens
	if c.authenticated() {
		var err error
		if tokens, err = c.tokens.Tokens(ctx); err != nil {
			return err
		}
		if tokens.Access != "" && tokens.Refresh != "" && accessExpired(tokens.Access, c.now()) {
			c.logger.Info(ctx, "access token expired, refreshing before request", "path", path)
			if tokens.Access, err = c.refresh(ctx, tokens.Refresh); err != nil {
				return err
			}
		}
	}

	status, body, err := c.send(ctx, method, path, payload, contentType, tokens.Access)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && c.authenticated() && tokens.Refresh != "" {
		c.logger.Info(ctx, "access token rejected, refreshing", "path", path)
		if tokens.Access, err = c.refresh(ctx, tokens.Refresh); err != nil {
			return err
		}
		if status, body, err = c.send(ctx, method, path, payload, contentType, tokens.Access); err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		herr := &HTTPError{Method: method, Path: path, StatusCode: status, Detail: errorDetail(body)}
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "status", status, "detail", herr.Detail)
		return herr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs one HTTP exchange and returns status and body.
func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, contentType, access string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, mapTransportError(err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if access != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+access)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(ctx, "request transport error", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, mapTransportError(err)
	}

	c.logger.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", c.now().Sub(start),
	)

	return resp.StatusCode, data, nil
}

// refresh trades the refresh token for a new access token. Any failure
// clears stored tokens so the session ends cleanly.
func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := encodeJSON(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}

	status, body, err := c.send(ctx, http.MethodPost, RefreshPath, payload, "application/json", "")
	if err != nil {
		return "", err
	}

	access := gjson.GetBytes(body, "access").String()
	if status != http.StatusOK || access == "" {
		c.logger.Warn(ctx, "token refresh rejected", "status", status)
		if cerr := c.tokens.Clear(ctx); cerr != nil {
			c.logger.Error(ctx, "clear tokens", "error", cerr)
		}
		return "", ErrUnauthorized
	}

	next := Tokens{Access: access, Refresh: gjson.GetBytes(body, "refresh").String()}
	if err := c.tokens.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save refreshed token: %w", err)
	}
	c.logger.Info(ctx, "access token refreshed")
	return access, nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
