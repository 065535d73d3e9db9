package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/logger"
)

const (
	fileField       = "file"
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 32 * 1024 * 1024
)

// Uploader sends a single file to the backend. Implementations never return
// an error: every failure is reported as a Result.
type Uploader interface {
	Upload(ctx context.Context, file chat.FileHandle) Result
}

// Client posts files to the upload endpoint as multipart/form-data.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	origin   string
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero disables the per-request bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

func WithOrigin(origin string) ClientOption {
	return func(c *Client) { c.origin = origin }
}

func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     http.DefaultClient,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Upload(ctx context.Context, file chat.FileHandle) Result {
	body, contentType, err := encodeFile(file)
	if err != nil {
		return TransportError{Filename: file.Name, Reason: err.Error()}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return TransportError{Filename: file.Name, Reason: err.Error()}
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("upload request failed", "file", file.Name, "error", err)
		return TransportError{Filename: file.Name, Reason: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return TransportError{Filename: file.Name, Reason: fmt.Sprintf("read response: %v", err)}
	}

	logger.Debug("upload response", "file", file.Name, "status", resp.StatusCode, "bytes", len(data), "took", time.Since(start))

	return Decode(file, resp.StatusCode, data)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeFile builds a multipart body with a single "file" part whose
// Content-Type is sniffed from the file's bytes.
func encodeFile(file chat.FileHandle) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", http.DetectContentType(file.Content))

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("write part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
