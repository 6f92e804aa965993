// Package figma fetches design documents and rendered previews from the
// Figma REST API. Failures are reported as distinct error categories so
// callers can show a specific message.
package figma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Figma API endpoint.
const DefaultBaseURL = "https://api.figma.com"

var (
	ErrTokenRequired     = errors.New("figma access token is required")
	ErrInvalidToken      = errors.New("invalid figma access token")
	ErrFileNotFound      = errors.New("figma file not found")
	ErrMalformedDocument = errors.New("invalid figma file structure")
	ErrNoPreview         = errors.New("no image url returned from figma")
	ErrInvalidURL        = errors.New("not a valid figma design url")
)

// StatusError is an HTTP failure that has no dedicated category.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// Client talks to the Figma API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client with a 30s request timeout unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Me validates a token against the current-user endpoint.
func (c *Client) Me(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, token, "/v1/me", nil, &out); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

type fileResponse struct {
	Name     string `json:"name"`
	Document *struct {
		Children []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"children"`
	} `json:"document"`
}

type imagesResponse struct {
	Err    *string           `json:"err"`
	Images map[string]string `json:"images"`
}

// Preview is the rendered image of a file's top-level frame.
type Preview struct {
	FileKey  string
	FileName string
	FrameID  string
	ImageURL string
}

// FetchPreview loads the file description, picks its first top-level frame
// and asks the API to render it as a PNG at 2x scale.
func (c *Client) FetchPreview(ctx context.Context, token, fileKey string) (*Preview, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	var file fileResponse
	if err := c.get(ctx, token, "/v1/files/"+url.PathEscape(fileKey), nil, &file); err != nil {
		return nil, err
	}
	if file.Document == nil || len(file.Document.Children) == 0 || file.Document.Children[0].ID == "" {
		return nil, ErrMalformedDocument
	}
	frame := file.Document.Children[0].ID

	q := url.Values{}
	q.Set("ids", frame)
	q.Set("format", "png")
	q.Set("scale", "2")
	var images imagesResponse
	if err := c.get(ctx, token, "/v1/images/"+url.PathEscape(fileKey), q, &images); err != nil {
		return nil, err
	}
	img := images.Images[frame]
	if img == "" {
		return nil, ErrNoPreview
	}

	c.logger.Debug("figma preview fetched", zap.String("fileKey", fileKey), zap.String("frame", frame))
	return &Preview{FileKey: fileKey, FileName: file.Name, FrameID: frame, ImageURL: img}, nil
}

func (c *Client) get(ctx context.Context, token, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Figma-Token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("figma request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidToken
	case resp.StatusCode == http.StatusNotFound:
		return ErrFileNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Op: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return nil
}
