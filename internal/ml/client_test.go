package ml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solarwatch/backend/internal/config"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string, timeoutMS int) *Client {
	t.Helper()
	logger, err := utils.NewLogger(&config.LogConfig{Level: "error", Format: "console"})
	require.NoError(t, err)

	return NewClient(&config.ClassifierConfig{
		BaseURL:     serverURL,
		PredictPath: "/predict",
		TimeoutMS:   timeoutMS,
	}, logger)
}

func TestPredictFaultSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"predicted_fault": "PARTIAL_SHADING",
			"confidence": "High",
			"confidence_score": 0.87,
			"severity": "Low",
			"description": "Shading detected",
			"all_probabilities": {"PARTIAL_SHADING": 0.87, "NORMAL": 0.13}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1000)

	result, err := client.PredictFault(context.Background(), &Sample{
		Voltage:     30,
		Current:     6,
		Temperature: 35,
		Irradiance:  800,
		Power:       180,
	})
	require.NoError(t, err)
	assert.Equal(t, "PARTIAL_SHADING", result.PredictedFault)
	require.NotNil(t, result.ConfidenceScore)
	assert.InDelta(t, 0.87, *result.ConfidenceScore, 0.0001)
}

func TestPredictFaultServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1000)

	_, err := client.PredictFault(context.Background(), &Sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictFaultTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 50)

	_, err := client.PredictFault(context.Background(), &Sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictFaultUnreachable(t *testing.T) {
	// Port is closed; the server is created and stopped immediately
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url, 500)

	_, err := client.PredictFault(context.Background(), &Sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictFaultMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1000)

	_, err := client.PredictFault(context.Background(), &Sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestPredictFaultMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fault label", `{"confidence_score": 0.9}`},
		{"missing confidence score", `{"predicted_fault": "NORMAL"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, 1000)

			_, err := client.PredictFault(context.Background(), &Sample{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestPredictFaultZeroConfidenceScoreAccepted(t *testing.T) {
	// A score of 0 is a valid value and must not be treated as missing
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predicted_fault": "NORMAL", "confidence_score": 0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1000)

	result, err := client.PredictFault(context.Background(), &Sample{})
	require.NoError(t, err)
	require.NotNil(t, result.ConfidenceScore)
	assert.Equal(t, 0.0, *result.ConfidenceScore)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1000)
	assert.NoError(t, client.Health(context.Background()))
}
