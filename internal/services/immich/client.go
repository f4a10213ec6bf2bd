package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"immichstack/internal/config"
	"immichstack/internal/logging"
	"immichstack/internal/services"
)

const (
	defaultUserAgent   = "immich-stack/dev"
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 4096
	stageName          = "immich"
)

// Config describes the Immich client configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Client wraps the Immich REST API.
type Client struct {
	baseURL        *url.URL
	apiKey         string
	userAgent      string
	http           *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new client", "api key is required", nil)
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new client", "base url is required", nil)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new client", "parse base url", err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	initial := cfg.InitialBackoff
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	ceiling := cfg.MaxBackoff
	if ceiling <= 0 {
		ceiling = defaultMaxBackoff
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:        baseURL,
		apiKey:         apiKey,
		userAgent:      userAgent,
		http:           client,
		maxRetries:     retries,
		initialBackoff: initial,
		maxBackoff:     ceiling,
		logger:         logging.NewComponentLogger(cfg.Logger, "immich"),
	}, nil
}

// NewFromConfig builds a client from the [immich] configuration section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "new client", "configuration unavailable", nil)
	}
	return New(Config{
		BaseURL:    cfg.Immich.URL,
		APIKey:     cfg.Immich.APIKey,
		Timeout:    cfg.RequestTimeout(),
		MaxRetries: cfg.Immich.MaxRetries,
		Logger:     logger,
	})
}

// Duplicates fetches the server's duplicate groups.
func (c *Client) Duplicates(ctx context.Context) ([]DuplicateGroup, error) {
	var groups []DuplicateGroup
	if err := c.do(ctx, http.MethodGet, []string{"api", "duplicates"}, nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Albums lists albums visible to the API key, without their assets.
func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.do(ctx, http.MethodGet, []string{"api", "albums"}, nil, nil, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// Album fetches one album including its assets.
func (c *Client) Album(ctx context.Context, id string) (*Album, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, stageName, "get album", "album id is required", nil)
	}
	query := url.Values{}
	query.Set("withoutAssets", "false")
	var album Album
	if err := c.do(ctx, http.MethodGet, []string{"api", "albums", id}, query, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// CreateStack groups the assets under the first id and returns the stack.
func (c *Client) CreateStack(ctx context.Context, assetIDs []string) (*Stack, error) {
	if len(assetIDs) < 2 {
		return nil, services.Wrap(services.ErrValidation, stageName, "create stack", fmt.Sprintf("need at least two asset ids, got %d", len(assetIDs)), nil)
	}
	var stack Stack
	body := createStackRequest{AssetIDs: assetIDs}
	if err := c.do(ctx, http.MethodPost, []string{"api", "stacks"}, nil, body, &stack); err != nil {
		return nil, err
	}
	return &stack, nil
}

// Stack satisfies the stacking sink contract: it creates the stack and
// reports the primary asset the server settled on.
func (c *Client) Stack(ctx context.Context, assetIDs []string) (string, error) {
	stack, err := c.CreateStack(ctx, assetIDs)
	if err != nil {
		return "", err
	}
	if stack.PrimaryAssetID == "" {
		return assetIDs[0], nil
	}
	return stack.PrimaryAssetID, nil
}

func (c *Client) do(ctx context.Context, method string, segments []string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	operation := method + " " + strings.Join(segments, "/")

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return services.Wrap(services.ErrValidation, stageName, operation, "encode request", err)
		}
	}

	logger := logging.WithContext(ctx, c.logger)
	attempt := 0
	for {
		resp, err := c.send(ctx, method, endpoint.String(), payload)
		if err == nil {
			err = c.readResponse(resp, operation, out)
		}
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !services.IsTransient(err) || attempt >= c.maxRetries {
			return err
		}
		attempt++
		delay := backoffFor(attempt, c.initialBackoff, c.maxBackoff)
		if hinted, ok := retryAfter(resp, c.maxBackoff); ok {
			delay = hinted
		}
		logging.WarnWithContext(logger, "immich request failed, retrying", "immich_retry",
			logging.String("operation", operation),
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", c.maxRetries),
			logging.Duration("backoff", delay),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the Immich server is reachable and not overloaded"),
			logging.String(logging.FieldImpact, "request delayed"),
		)
		if err := sleepWithContext(ctx, delay); err != nil {
			return err
		}
	}
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stageName, method, "build request", err)
	}
	c.applyHeaders(ctx, req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrTransient, stageName, method+" "+req.URL.Path, "request failed", err)
	}
	return resp, nil
}

func (c *Client) readResponse(resp *http.Response, operation string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := fmt.Sprintf("status %s", resp.Status)
		if text := strings.TrimSpace(string(snippet)); text != "" {
			message += ": " + text
		}
		return services.Wrap(statusMarker(resp.StatusCode), stageName, operation, message, nil)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternalService, stageName, operation, "decode response", err)
	}
	return nil
}

func statusMarker(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return services.ErrConfiguration
	case code == http.StatusNotFound:
		return services.ErrNotFound
	case retriableStatus(code):
		return services.ErrTransient
	default:
		return services.ErrExternalService
	}
}

func (c *Client) applyHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-Id", rid)
	}
}
