package classifier

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
)

// DefaultTimeout bounds each request to the model server.
const DefaultTimeout = 30 * time.Second

// ErrNotConfigured is the load error when no model server endpoint is set.
var ErrNotConfigured = errors.New("classifier endpoint not configured")

// ModelServer is a Predictor backed by a TensorFlow Serving style REST API.
// Endpoint is the model URL, e.g. http://localhost:8501/v1/models/skin.
type ModelServer struct {
	endpoint string
	client   *http.Client
}

type predictRequest struct {
	Instances []*Tensor `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
}

// ModelServerLoader returns a Loader that checks the model status at endpoint
// and then predicts against it.
func ModelServerLoader(endpoint string, timeout time.Duration) Loader {
	return func(ctx context.Context) (Predictor, error) {
		if endpoint == "" {
			return nil, ErrNotConfigured
		}
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		m := &ModelServer{
			endpoint: strings.TrimRight(endpoint, "/"),
			client:   &http.Client{Timeout: timeout},
		}
		if err := m.checkStatus(ctx); err != nil {
			return nil, err
		}
		return m, nil
	}
}

func (m *ModelServer) checkStatus(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("model status: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("model status: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Predict sends one instance and returns its probability vector.
func (m *ModelServer) Predict(ctx context.Context, input *Tensor) ([]float32, error) {
	body, err := json.Marshal(predictRequest{Instances: []*Tensor{input}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+":predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if len(decoded.Predictions) != 1 {
		return nil, fmt.Errorf("expected 1 prediction, got %d", len(decoded.Predictions))
	}
	return decoded.Predictions[0], nil
}
