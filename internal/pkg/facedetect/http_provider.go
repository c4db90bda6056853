package facedetect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"facelog-be/internal/pkg/facematch"
)

// HTTPProvider talks to the face service sidecar, which wraps the actual
// detection model behind two JSON endpoints.
type HTTPProvider struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string) Provider {
	if baseURL == "" {
		baseURL = "http://localhost:8500"
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type detectRequest struct {
	Image string `json:"image"` // base64
	Model string `json:"model,omitempty"`
}

type detectResponse struct {
	Faces []struct {
		Box       BoundingBox `json:"box"`
		Embedding []float32   `json:"embedding"`
	} `json:"faces"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"` // "no_face" | "multiple_faces"
}

func (p *HTTPProvider) DetectFaces(ctx context.Context, image []byte, model string) ([]Detection, error) {
	body, err := p.post(ctx, "/detect", detectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
		Model: model,
	})
	if err != nil {
		return nil, err
	}

	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("face service detect response: %w", err)
	}

	detections := make([]Detection, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		detections = append(detections, Detection{
			Box:       f.Box,
			Embedding: facematch.Embedding(f.Embedding),
		})
	}
	return detections, nil
}

func (p *HTTPProvider) Embed(ctx context.Context, image []byte) (facematch.Embedding, error) {
	body, err := p.post(ctx, "/embed", detectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("face service embed response: %w", err)
	}
	if resp.Error == "no_face" || resp.Error == "multiple_faces" {
		return nil, ErrNoFaceOrMultipleFaces
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("face service embed error: %s", resp.Error)
	}

	embedding := facematch.Embedding(resp.Embedding)
	if err := embedding.Validate(); err != nil {
		return nil, err
	}
	return embedding, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face service %s: status %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}
