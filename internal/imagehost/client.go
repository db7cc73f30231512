package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Uploader pushes a player photo to an external image host and returns a
// stable URL for it. Implementations must treat failure as recoverable:
// callers degrade to "no photo" rather than failing their request.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

// Passthrough returns the image reference unchanged. Used when no image
// host is configured: plain URLs and data URIs are stored as-is.
type Passthrough struct{}

// Upload returns the input untouched
func (Passthrough) Upload(_ context.Context, image string) (string, error) {
	return image, nil
}

// Client uploads images to an HTTP image host
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an image host client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadRequest struct {
	Image string `json:"image"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload posts the image (data URI or pass-through URL) and returns the
// hosted URL. Non-data-URI inputs are returned directly without a network
// round trip, matching the host's pass-through contract.
func (c *Client) Upload(ctx context.Context, image string) (string, error) {
	if !strings.HasPrefix(image, "data:") {
		return image, nil
	}

	body, err := json.Marshal(uploadRequest{Image: image})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(data))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.URL, nil
}
