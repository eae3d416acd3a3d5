package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/iwvelando/ifta-report/internal/ifta"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrDisabled is logged when no API key is configured.
var ErrDisabled = errors.New("advisory API key is not configured")

var retryableStatusCodes = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client calls the model API.
type Client struct {
	cfg             Config
	httpClient      *http.Client
	initialInterval time.Duration
	logger          *zap.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInitialInterval sets the first retry delay.
func WithInitialInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.initialInterval = interval
	}
}

// NewClient returns a Client for cfg. Unset fields take their defaults.
func NewClient(cfg Config, logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()
	c := &Client{
		cfg:             cfg,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		initialInterval: 500 * time.Millisecond,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Assess returns audit-risk insights for trips. It never fails: any error is
// logged and the fallback payload is returned instead.
func (c *Client) Assess(ctx context.Context, trips []ifta.Trip) Insights {
	start := time.Now()
	insights, err := c.assess(ctx, trips)
	if err != nil {
		c.logger.Error("advisory assessment failed, using fallback",
			zap.String("op", "advisory.Assess"),
			zap.Int("trip_count", len(trips)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return Fallback()
	}

	c.logger.Info("advisory assessment complete",
		zap.String("op", "advisory.Assess"),
		zap.Int("trip_count", len(trips)),
		zap.String("risk_level", insights.RiskLevel),
		zap.Int("recommendations", len(insights.Recommendations)),
		zap.Duration("duration", time.Since(start)),
	)
	return insights
}

func (c *Client) assess(ctx context.Context, trips []ifta.Trip) (Insights, error) {
	if !c.cfg.Enabled() {
		return Insights{}, ErrDisabled
	}

	prompt, err := BuildPrompt(trips)
	if err != nil {
		return Insights{}, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     c.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.cfg.Endpoint,
			APIVersion: constants.AdvisoryAPIVersion,
		},
	})
	if err != nil {
		return Insights{}, fmt.Errorf("failed to create model client: %w", err)
	}

	var text string
	operation := func() error {
		var opErr error
		text, opErr = c.generate(ctx, client, prompt)
		return opErr
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.initialInterval
	expBackoff.MaxElapsedTime = c.cfg.Timeout * time.Duration(c.cfg.MaxRetries+1)
	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(c.cfg.MaxRetries)), ctx)

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("advisory request failed, retrying",
			zap.String("op", "advisory.Assess"),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return Insights{}, err
	}

	return parseInsights(text)
}

// generate makes one model call. Errors that cannot succeed on retry are
// marked permanent.
func (c *Client) generate(ctx context.Context, client *genai.Client, prompt string) (string, error) {
	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), generateConfig())
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}
		if code, ok := statusCode(err); ok && !retryableStatusCodes[code] {
			return "", backoff.Permanent(fmt.Errorf("advisory request failed with status %d: %w", code, err))
		}
		return "", fmt.Errorf("advisory request failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", backoff.Permanent(errors.New("empty response from advisory model"))
	}
	return text, nil
}

// statusCode extracts the HTTP status of a model API error.
func statusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func parseInsights(text string) (Insights, error) {
	var insights Insights
	if err := json.Unmarshal([]byte(text), &insights); err != nil {
		return Insights{}, fmt.Errorf("failed to parse advisory insights: %w", err)
	}
	if insights.RiskLevel == "" || insights.Summary == "" {
		return Insights{}, errors.New("advisory insights are missing riskLevel or summary")
	}
	if insights.Recommendations == nil {
		insights.Recommendations = []string{}
	}
	return insights, nil
}
