package ml

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

	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// Classifier client errors
var (
	// ErrUnavailable indicates the classifier could not be reached or
	// returned a non-success status
	ErrUnavailable = errors.New("classifier service unavailable")
	// ErrBadResponse indicates the classifier replied but the payload was
	// not usable
	ErrBadResponse = errors.New("classifier returned malformed response")
)

// Sample is the set of sensor measurements submitted for classification
type Sample struct {
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Temperature float64 `json:"temperature"`
	Irradiance  float64 `json:"irradiance"`
	Power       float64 `json:"power"`
}

// Classification is the classifier's verdict for one sample. Only
// PredictedFault and ConfidenceScore are trusted; severity and
// recommendation hints from the service are advisory and recomputed locally.
type Classification struct {
	PredictedFault            string             `json:"predicted_fault"`
	Confidence                string             `json:"confidence"`
	ConfidenceScore           *float64           `json:"confidence_score"`
	Severity                  string             `json:"severity"`
	Description               string             `json:"description"`
	MaintenanceRecommendation string             `json:"maintenance_recommendation"`
	InputValues               map[string]float64 `json:"input_values"`
	AllProbabilities          map[string]float64 `json:"all_probabilities"`
}

// Client communicates with the external fault-classification service
type Client struct {
	httpClient  *http.Client
	baseURL     string
	predictPath string
	logger      *utils.Logger
}

// NewClient creates a new classifier client from configuration
func NewClient(cfg *config.ClassifierConfig, logger *utils.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		predictPath: cfg.PredictPath,
		logger:      logger.Named("ml_client"),
	}
}

// PredictFault submits a sensor sample and returns the classification.
// One request per call; there is no retry. A failed call returns
// ErrUnavailable (transport, timeout, non-2xx) or ErrBadResponse
// (undecodable payload, missing fault label or confidence score).
func (c *Client) PredictFault(ctx context.Context, sample *Sample) (*Classification, error) {
	body, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction request: %w", err)
	}

	url := c.baseURL + c.predictPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Classifier request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Classifier returned error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("Failed to decode classifier response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if result.PredictedFault == "" || result.ConfidenceScore == nil {
		c.logger.Warn("Classifier response missing required fields",
			zap.String("predicted_fault", result.PredictedFault),
			zap.Bool("has_confidence_score", result.ConfidenceScore != nil))
		return nil, fmt.Errorf("%w: missing predicted_fault or confidence_score", ErrBadResponse)
	}

	return &result, nil
}

// Health checks whether the classifier service is reachable
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return nil
}
