package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
	"github.com/devkavach22/kavach-edit/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.EditBackend = (*Backend)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = domain.DefaultBaseURL
	DefaultTimeout    = domain.DefaultTimeout
	DefaultMaxRetries = 3

	editPath     = "/pdf/edit-pdf"
	downloadPath = "/pdf/download/"

	maxResponseBytes = 1 << 20
)

// Config holds configuration for the remote edit backend.
type Config struct {
	// BaseURL is the service API root (default: http://localhost:5000/api).
	BaseURL string

	// Token is the access token. Empty sends no Authorization header.
	Token string

	// AuthScheme selects how Token is sent (default: raw).
	AuthScheme domain.AuthScheme

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond caps the request rate (default: 2).
	RequestsPerSecond float64

	// MaxRetries bounds retries after 429 responses (default: 3).
	MaxRetries int
}

// ConfigFrom builds a Config from backend settings.
func ConfigFrom(s domain.BackendSettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Token:             s.Token,
		AuthScheme:        s.AuthScheme,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Backend talks to the Kavach PDF service over HTTP.
type Backend struct {
	client     *http.Client
	baseURL    string
	token      string
	scheme     domain.AuthScheme
	limiter    *RateLimiter
	maxRetries int
}

// NewBackend creates a new remote backend.
func NewBackend(cfg Config) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = domain.AuthSchemeRaw
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = domain.DefaultRequestsPerSecond
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" && cfg.AuthScheme == domain.AuthSchemeBearer {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = cfg.Timeout
	}

	return &Backend{
		client:     client,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		scheme:     cfg.AuthScheme,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
		maxRetries: cfg.MaxRetries,
	}
}

// Edit uploads the source document with its instructions and returns the
// name of the edited file.
func (b *Backend) Edit(ctx context.Context, req domain.EditRequest) (*domain.ProcessedFile, error) {
	body, contentType, err := buildEditForm(req)
	if err != nil {
		return nil, err
	}

	resp, err := b.do(ctx, func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+editPath, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("Accept", "application/json")
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrBackend, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: edit failed (status %d): %s", domain.ErrBackend, resp.StatusCode, snippet(data))
	}

	name, err := normaliseResponse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug("remote edit produced %s", name)
	return &domain.ProcessedFile{FileName: name, OriginalName: req.OriginalName}, nil
}

// Download streams the named output file into w.
func (b *Backend) Download(ctx context.Context, fileName string, w io.Writer) error {
	name := domain.BaseFileName(fileName)
	if name == "" {
		return fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}

	resp, err := b.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+downloadPath+url.PathEscape(name), nil)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("%w: download failed (status %d): %s", domain.ErrBackend, resp.StatusCode, snippet(data))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%w: download %s: %v", domain.ErrBackend, name, err)
	}
	return nil
}

// do sends a request built by newReq, retrying on 429 after the advertised
// backoff. The caller closes the returned body.
func (b *Backend) do(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("%w: build request: %v", domain.ErrBackend, err)
		}
		b.authorise(req)

		resp, err := b.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrBackend, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= b.maxRetries {
			return resp, nil
		}

		wait := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Warn("edit service rate limited, retrying (attempt %d)", attempt+1)
		b.limiter.RecordRateLimit(wait)
	}
}

// authorise sets the raw Authorization header. Bearer tokens are added by
// the oauth2 transport.
func (b *Backend) authorise(req *http.Request) {
	if b.token == "" || b.scheme != domain.AuthSchemeRaw {
		return
	}
	req.Header.Set("Authorization", b.token)
}

// buildEditForm encodes the multipart body for an edit request.
func buildEditForm(req domain.EditRequest) ([]byte, string, error) {
	if req.SourcePath == "" {
		return nil, "", fmt.Errorf("%w: no source document", domain.ErrInvalidInput)
	}

	f, err := os.Open(req.SourcePath)
	if err != nil {
		return nil, "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	instructions := req.Instructions
	if instructions == nil {
		instructions = []domain.EditInstruction{}
	}
	edits, err := json.Marshal(instructions)
	if err != nil {
		return nil, "", fmt.Errorf("encode edits: %w", err)
	}

	name := req.OriginalName
	if name == "" {
		name = filepath.Base(req.SourcePath)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read source: %w", err)
	}

	if err := mw.WriteField("edits", string(edits)); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}
