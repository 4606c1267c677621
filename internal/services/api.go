// API service for making HTTP requests to the play-clip backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://localhost:3000"
	maxErrorBody   = 512
)

// APIService performs requests against the backend REST API.
type APIService struct {
	baseURL  string
	assetURL string
	client   *http.Client
	public   *http.Client
	limiter  *rate.Limiter
	session  Session
	logger   *log.Logger
}

// APIOpts configures [NewAPIService].
type APIOpts struct {
	Config    shared.APIConfig
	Session   Session
	Transport http.RoundTripper // base transport, defaults to [http.DefaultTransport]
	Logger    *log.Logger
}

// NewAPIService creates an API service. Authenticated requests get their bearer header from opts.Session.
func NewAPIService(opts APIOpts) *APIService {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	baseURL := strings.TrimRight(opts.Config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	assetURL := strings.TrimRight(opts.Config.AssetBaseURL, "/")
	if assetURL == "" {
		assetURL = baseURL
	}

	limit := rate.Inf
	burst := opts.Config.Burst
	if opts.Config.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.Config.RequestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	timeout := opts.Config.Timeout()
	return &APIService{
		baseURL:  baseURL,
		assetURL: assetURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: sessionTokenSource{session: opts.Session}, Base: base},
		},
		public:  &http.Client{Timeout: timeout, Transport: base},
		limiter: rate.NewLimiter(limit, burst),
		session: opts.Session,
		logger:  logger,
	}
}

// BaseURL returns the backend root without a trailing slash.
func (a *APIService) BaseURL() string { return a.baseURL }

// AssetURL resolves a possibly relative asset path against the asset base URL.
func (a *APIService) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return a.assetURL + "/" + strings.TrimLeft(path, "/")
}

// get performs an authenticated GET and decodes the JSON body into result.
func (a *APIService) get(ctx context.Context, path string, query url.Values, result any) error {
	return a.doRequest(ctx, a.client, http.MethodGet, path, query, nil, result)
}

// post performs an authenticated POST with a JSON body.
func (a *APIService) post(ctx context.Context, path string, body, result any) error {
	return a.doRequest(ctx, a.client, http.MethodPost, path, nil, body, result)
}

func (a *APIService) doRequest(ctx context.Context, client *http.Client, method, path string, query url.Values, body, result any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}

	fullURL := a.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return fmt.Errorf("%w: no session token", shared.ErrNotAuthenticated)
		}
		a.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	a.logger.Debug("response", "method", method, "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if a.session != nil && client == a.client {
			a.session.OnUnauthorized()
		}
		return fmt.Errorf("%w: status %d", shared.ErrNotAuthenticated, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if result == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrNetwork, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}
	return nil
}
