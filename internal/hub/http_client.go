package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/domain"
)

// Per-operation request timeouts. Upload carries the full consolidated
// document, so it gets the generous one.
const (
	validateTimeout = 10 * time.Second
	uploadTimeout   = 30 * time.Second
	deleteTimeout   = 10 * time.Second
)

// HTTPClient talks to the hub over its three POST endpoints with Basic auth.
// A shared token bucket bounds the outbound request rate so a large batch
// cannot hammer the hub.
type HTTPClient struct {
	baseURL    string
	creds      config.Credentials
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewHTTPClient(baseURL string, creds config.Credentials, ratePerSec int, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
		logger:     logger,
	}
}

type validateRequest struct {
	GroupKey  string `json:"group_key"`
	StoreName string `json:"store_name"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

type uploadRequest struct {
	GroupKey  string         `json:"group_key"`
	StoreName string         `json:"store_name"`
	ContentID string         `json:"content_id"`
	Markdown  string         `json:"markdown"`
	Metadata  map[string]any `json:"metadata"`
}

type deleteRequest struct {
	GroupKey  string `json:"group_key"`
	StoreName string `json:"store_name"`
	ContentID string `json:"content_id"`
}

func (c *HTTPClient) ValidateStore(ctx context.Context, groupKey, storeName string) (bool, error) {
	status, body, err := c.post(ctx, "/api/nyx-sync/validate-store", validateRequest{
		GroupKey:  groupKey,
		StoreName: storeName,
	}, validateTimeout)
	if err != nil {
		c.logger.Error("store validation request failed",
			zap.String("store", storeName), zap.Error(err))
		return false, nil
	}
	if suspended := c.checkBackpressure("validate-store", status); suspended != nil {
		return false, suspended
	}
	if status != http.StatusOK {
		c.logger.Error("store validation declined",
			zap.String("store", storeName), zap.Int("status", status))
		return false, nil
	}

	var resp validateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("store validation response unparseable",
			zap.String("store", storeName), zap.Error(err))
		return false, nil
	}
	return resp.Valid, nil
}

func (c *HTTPClient) UploadContent(ctx context.Context, groupKey, storeName, contentID, markdown string, metadata map[string]any) (bool, error) {
	status, _, err := c.post(ctx, "/api/nyx-sync/upload", uploadRequest{
		GroupKey:  groupKey,
		StoreName: storeName,
		ContentID: contentID,
		Markdown:  markdown,
		Metadata:  metadata,
	}, uploadTimeout)
	if err != nil {
		c.logger.Error("content upload failed",
			zap.String("content_id", contentID), zap.Error(err))
		return false, nil
	}
	if suspended := c.checkBackpressure("upload", status); suspended != nil {
		return false, suspended
	}

	if status == http.StatusOK || status == http.StatusCreated {
		c.logger.Info("content uploaded",
			zap.String("content_id", contentID), zap.String("store", storeName))
		return true, nil
	}
	c.logger.Error("content upload declined",
		zap.String("content_id", contentID), zap.Int("status", status))
	return false, nil
}

func (c *HTTPClient) DeleteContent(ctx context.Context, groupKey, storeName, contentID string) (bool, error) {
	status, _, err := c.post(ctx, "/api/nyx-sync/delete", deleteRequest{
		GroupKey:  groupKey,
		StoreName: storeName,
		ContentID: contentID,
	}, deleteTimeout)
	if err != nil {
		c.logger.Error("content delete failed",
			zap.String("content_id", contentID), zap.Error(err))
		return false, nil
	}
	if suspended := c.checkBackpressure("delete", status); suspended != nil {
		return false, suspended
	}
	return status == http.StatusOK || status == http.StatusNoContent, nil
}

// checkBackpressure maps the hub's overload responses to the suspend signal.
// 429 and 503 mean "come back later": the batch halts and the job survives.
func (c *HTTPClient) checkBackpressure(op string, status int) error {
	if status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable {
		c.logger.Warn("hub requested backoff",
			zap.String("operation", op), zap.Int("status", status))
		return fmt.Errorf("%w: hub returned %d on %s", domain.ErrSuspended, status, op)
	}
	return nil
}

// post rate-limits, marshals, and issues one blocking request bounded by the
// operation's timeout, returning the status code and fully-read body.
func (c *HTTPClient) post(ctx context.Context, path string, payload any, timeout time.Duration) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.creds.Username, c.creds.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// compile-time check that HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
