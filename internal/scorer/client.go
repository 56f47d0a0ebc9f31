package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"skycast/internal/config"
)

// ErrUnavailable marks any scorer failure: timeout, transport error,
// non-success status, or a malformed payload. It is an internal fallback
// signal and is never surfaced to prediction callers.
var ErrUnavailable = errors.New("scorer unavailable")

// HTTPDoer describes the HTTP client used by the scorer.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Health is the scorer's health probe payload.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ModelInfo describes the model behind a prediction.
type ModelInfo struct {
	Type     string  `json:"type"`
	Accuracy float64 `json:"accuracy"`
}

// DataAvailability reports whether the model has seen the requested airports.
type DataAvailability struct {
	OriginKnown      bool `json:"originKnown"`
	DestinationKnown bool `json:"destinationKnown"`
}

// Prediction is a successful scoring result. DelayProbability is already a
// 0-100 percentage with two-decimal precision.
type Prediction struct {
	Origin           string           `json:"origin"`
	Destination      string           `json:"destination"`
	DayOfWeek        string           `json:"dayOfWeek"`
	DelayProbability float64          `json:"delayProbability"`
	Confidence       string           `json:"confidence"`
	Message          string           `json:"message"`
	ModelInfo        ModelInfo        `json:"modelInfo"`
	DataAvailability DataAvailability `json:"dataAvailability"`
}

type predictResponse struct {
	Success    bool        `json:"success"`
	Prediction *Prediction `json:"prediction"`
}

// Metadata describes the loaded model, from the scorer's info endpoint.
type Metadata struct {
	ModelType   string  `json:"model_type"`
	ROCAUCScore float64 `json:"roc_auc_score"`
	TrainedOn   string  `json:"trained_on"`
}

type infoResponse struct {
	Success   bool     `json:"success"`
	ModelInfo Metadata `json:"model_info"`
}

// Client talks to the external ML scoring service.
type Client struct {
	baseURL       string
	client        HTTPDoer
	healthTimeout time.Duration
	scoreTimeout  time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient builds a scorer client from configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(cfg.Scorer.BaseURL), "/"),
		client:        &http.Client{},
		healthTimeout: time.Duration(cfg.Scorer.HealthTimeoutSeconds) * time.Second,
		scoreTimeout:  time.Duration(cfg.Scorer.ScoreTimeoutSeconds) * time.Second,
	}
	if client.healthTimeout <= 0 {
		client.healthTimeout = 5 * time.Second
	}
	if client.scoreTimeout <= 0 {
		client.scoreTimeout = 10 * time.Second
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// HealthCheck probes the scorer and reports whether its model is loaded.
func (c *Client) HealthCheck(ctx context.Context) (Health, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, fmt.Errorf("%w: build health request: %w", ErrUnavailable, err)
	}

	var health Health
	if err := c.do(req, &health); err != nil {
		return Health{}, err
	}
	return health, nil
}

// Score requests a delay prediction for a route and weekday. Any timeout,
// non-success status, or malformed payload returns an error, never a
// zero-probability result.
func (c *Client) Score(ctx context.Context, origin, destination string, dayOfWeek int) (*Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.scoreTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"origin":      origin,
		"destination": destination,
		"dayOfWeek":   dayOfWeek,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal score request: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build score request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var parsed predictResponse
	if err := c.do(req, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Success || parsed.Prediction == nil {
		return nil, fmt.Errorf("%w: scorer reported failure", ErrUnavailable)
	}
	return parsed.Prediction, nil
}

// Info fetches metadata about the loaded model.
func (c *Client) Info(ctx context.Context) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model/info", nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: build info request: %w", ErrUnavailable, err)
	}

	var parsed infoResponse
	if err := c.do(req, &parsed); err != nil {
		return Metadata{}, err
	}
	if !parsed.Success {
		return Metadata{}, fmt.Errorf("%w: scorer reported failure", ErrUnavailable)
	}
	return parsed.ModelInfo, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: scorer returned %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read scorer response: %w", ErrUnavailable, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode scorer response: %w", ErrUnavailable, err)
	}
	return nil
}
