package cards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cardgallery/internal/logging"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Webhook endpoint paths, relative to the configured base URL.
const (
	PathGetAll = "/visiting_card_get_all"
	PathSearch = "/visiting_card_search"
	PathUpload = "/visiting_card_manger"
)

// maxErrorBody caps how much of a failed response body is kept for logs.
const maxErrorBody = 512

// ClientConfig holds webhook client settings.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// Client calls the three webhook endpoints. It is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a webhook client.
func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		httpClient: hc,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchAll returns every card known to the service, in service order.
func (c *Client) FetchAll(ctx context.Context) ([]Card, error) {
	return c.list(ctx, OpFetchAll, c.baseURL+PathGetAll)
}

// Search returns the cards matching query. The query is sent as-is apart
// from percent-encoding; callers reject blank queries.
func (c *Client) Search(ctx context.Context, query string) ([]Card, error) {
	return c.list(ctx, OpSearch, SearchURL(c.baseURL, query))
}

// SearchURL builds the search endpoint URL with an encoded query.
func SearchURL(baseURL, query string) string {
	v := url.Values{}
	v.Set("search", query)
	return strings.TrimRight(baseURL, "/") + PathSearch + "?" + v.Encode()
}

func (c *Client) list(ctx context.Context, op Op, endpoint string) (result []Card, err error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reqID := uuid.NewString()
	log := logging.WithRequestID(logging.CategoryAPI, reqID)
	timer := logging.StartTimer(logging.CategoryAPI, string(op))
	status := 0
	defer func() {
		logging.AuditWithRequest(reqID).Request(string(op), endpoint, status, len(result), timer.Stop(), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newError(op, 0, "", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("GET %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return nil, newError(op, 0, "", fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(op, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("status %d from %s", resp.StatusCode, endpoint)
		return nil, newError(op, resp.StatusCode, excerpt(body), ErrStatus)
	}

	var lr ListResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		log.Error("decode failed: %v (body excerpt: %s)", err, excerpt(body))
		return nil, newError(op, resp.StatusCode, excerpt(body), fmt.Errorf("%w: %v", ErrDecode, err))
	}

	result = lr.Cards()
	log.Info("%s returned %d cards", op, len(result))
	return result, nil
}

// Upload posts an image to the manager endpoint as multipart/form-data with
// fields "file" (content) and "filename". The response body is returned
// verbatim; its content is not interpreted.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (respBody []byte, err error) {
	if filename == "" || r == nil {
		return nil, newError(OpUpload, 0, "", ErrNoFile)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(OpUpload, 0, "", fmt.Errorf("failed to read file: %w", err))
	}

	body, contentType, err := multipartBody(filename, content)
	if err != nil {
		return nil, newError(OpUpload, 0, "", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reqID := uuid.NewString()
	log := logging.WithRequestID(logging.CategoryUpload, reqID).With("file", filename)
	timer := logging.StartTimer(logging.CategoryUpload, string(OpUpload))
	status := 0
	defer func() {
		logging.AuditWithRequest(reqID).Upload(filename, int64(len(content)), status, timer.Stop(), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathUpload, body)
	if err != nil {
		return nil, newError(OpUpload, 0, "", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	log.Info("uploading %d bytes", len(content))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("upload request failed: %v", err)
		return nil, newError(OpUpload, 0, "", fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(OpUpload, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("upload failed: status %d: %s", resp.StatusCode, excerpt(respBody))
		return nil, newError(OpUpload, resp.StatusCode, excerpt(respBody), ErrStatus)
	}

	log.Info("upload succeeded: %s", excerpt(respBody))
	return respBody, nil
}

// UploadFile opens path and uploads it under its base name.
func (c *Client) UploadFile(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(OpUpload, 0, "", fmt.Errorf("failed to open file: %w", err))
	}
	defer f.Close()
	return c.Upload(ctx, filepath.Base(path), f)
}

func multipartBody(filename string, content []byte) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", mimetype.Detect(content).String())
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := w.WriteField("filename", filename); err != nil {
		return nil, "", fmt.Errorf("failed to write filename field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
