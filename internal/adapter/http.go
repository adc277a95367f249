package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/utils"
	"github.com/daybook-app/daybook-client/models"
)

type httpSyncServer struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPSyncServer constructs an HTTP/REST implementation of [SyncServer].
// It normalises and validates the base URL from adapterCfg.ServerAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.ServerAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPSyncServer(adapterCfg config.ClientAdapter, logger *logger.Logger) (SyncServer, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpSyncServer{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [SyncServer]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpSyncServer) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [SyncServer]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpSyncServer) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Push implements [SyncServer]. It POSTs the mutation batch to
// POST /api/sync/push and decodes the per-mutation outcome report. Requires a
// valid bearer token. Returns an error if the request fails or the server
// returns a non-2xx status; individual rejections are not errors, they come
// back in the response's Rejected list.
func (h *httpSyncServer) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	var result models.PushResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.PushResponse{}, fmt.Errorf("decode push response: %w", err)
	}

	return result, nil
}

// Pull implements [SyncServer]. It GETs one change feed page from
// GET /api/sync/pull?cursor=&limit= and decodes it. Requires a valid bearer
// token. Returns an error if the request, response mapping, or JSON decoding
// fails.
func (h *httpSyncServer) Pull(ctx context.Context, cursor int64, limit int) (models.PullResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{
			"cursor": strconv.FormatInt(cursor, 10),
			"limit":  strconv.Itoa(limit),
		}).
		Get("/api/sync/pull")
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	var result models.PullResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.PullResponse{}, fmt.Errorf("decode pull response: %w", err)
	}

	return result, nil
}

// Ping implements [SyncServer]. It GETs the unauthenticated health endpoint
// GET /api/sync/ping. Used by the connectivity observer as a cheap
// reachability probe.
func (h *httpSyncServer) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/sync/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpSyncServer) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
