// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package imagehost uploads user images to an external host and returns the
public URL.

The only backend is imgbb. The API key travels as the `key` query parameter
and the file as the multipart `image` field.
*/
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// ErrNotConfigured is returned by Upload when no API key was supplied.
var ErrNotConfigured = errors.New("imagehost: api key is not configured")

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(context context.Context, filename string, image io.Reader) (string, error)
}

// Config describes the imgbb client.
type Config struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// Imgbb implements [Uploader] against the imgbb upload API.
type Imgbb struct {
	apiKey   string
	endpoint *url.URL
	http     *http.Client
}

// NewImgbb builds a client. An empty API key is accepted; Upload then fails
// with [ErrNotConfigured] so callers can treat the photo as optional.
func NewImgbb(cfg Config) (*Imgbb, error) {
	endpoint, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil || endpoint.Host == "" {
		return nil, fmt.Errorf("imagehost: invalid endpoint %q", cfg.Endpoint)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Imgbb{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: endpoint,
		http:     client,
	}, nil
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

/*
Upload posts the image and returns the hosted URL.

Returns:
  - string: Public image URL
  - error: [ErrNotConfigured], transport failures, or an unsuccessful reply
*/
func (client *Imgbb) Upload(context context.Context, filename string, image io.Reader) (string, error) {
	if client.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("imagehost: build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("imagehost: read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("imagehost: build form: %w", err)
	}

	endpoint := *client.endpoint
	params := endpoint.Query()
	params.Set("key", client.apiKey)
	endpoint.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return "", fmt.Errorf("imagehost: build request: %w", err)
	}
	request.Header.Set("Content-Type", form.FormDataContentType())

	response, err := client.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("imagehost: upload request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", fmt.Errorf("imagehost: upload failed (%s): %s", response.Status, strings.TrimSpace(string(detail)))
	}

	var payload uploadResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("imagehost: decode response: %w", err)
	}
	if !payload.Success || payload.Data.URL == "" {
		return "", errors.New("imagehost: upload was not successful")
	}

	return payload.Data.URL, nil
}
