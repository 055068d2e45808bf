// Package ocrclient is the worker-side client of the recognition
// service.
package ocrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client posts cropped frames to the recognition service and returns the
// recognized alive count. The service owns sentinel coercion; whatever
// number it answers is publishable as-is.
type Client struct {
	baseURL     string
	processPath string
	httpc       *http.Client
}

// New builds a client for one game's process endpoint, e.g.
// New("http://rotisserie-ocr:3001", "/process_pubg").
func New(baseURL, processPath string) *Client {
	return &Client{
		baseURL:     baseURL,
		processPath: processPath,
		httpc:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Recognize submits the frame as the multipart "image" field and decodes
// the {"number": n} response.
func (r *Client) Recognize(ctx context.Context, image []byte) (int, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "frame.png")
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+r.processPath, &body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("recognize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("recognize: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Number *int `json:"number"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if result.Number == nil {
		return 0, fmt.Errorf("decode response: missing number")
	}
	return *result.Number, nil
}
