package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pin-guard/internal/config"
	"github.com/MKhiriev/go-pin-guard/internal/logger"
	"github.com/MKhiriev/go-pin-guard/internal/utils"
	"github.com/MKhiriev/go-pin-guard/models"
	"github.com/go-resty/resty/v2"
)

const (
	planUsagePath     = "/api/subscription/usage"
	profileStatusPath = "/api/profile/status"
)

type httpAccountAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountAdapter constructs an HTTP/REST implementation of
// [AccountAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL, request timeout and initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAccountAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (AccountAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient().
		WithBaseURL(baseURL).
		WithTimeout(adapterCfg.RequestTimeout)

	a := &httpAccountAdapter{client: client, logger: logger}
	a.SetToken(adapterCfg.Token)

	return a, nil
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

// SetToken implements [AccountAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpAccountAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AccountAdapter].
func (h *httpAccountAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetPlanUsage implements [AccountAdapter]. It calls
// GET /api/subscription/usage?user_id=<userID>.
func (h *httpAccountAdapter) GetPlanUsage(ctx context.Context, userID string) (models.PlanUsage, error) {
	if userID == "" {
		return models.PlanUsage{}, ErrEmptyUserID
	}

	var usage models.PlanUsage
	resp, err := h.authedRequest(ctx).
		SetQueryParam("user_id", userID).
		SetResult(&usage).
		Get(planUsagePath)
	if err != nil {
		return models.PlanUsage{}, fmt.Errorf("plan usage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpAccountAdapter.GetPlanUsage").
			Str("user_id", userID).Int("status", resp.StatusCode()).Msg("plan usage request failed")
		return models.PlanUsage{}, err
	}

	return usage, nil
}

// GetProfileStatus implements [AccountAdapter]. It calls
// GET /api/profile/status?user_id=<userID>.
func (h *httpAccountAdapter) GetProfileStatus(ctx context.Context, userID string) (models.ProfileStatus, error) {
	if userID == "" {
		return models.ProfileStatus{}, ErrEmptyUserID
	}

	var status models.ProfileStatus
	resp, err := h.authedRequest(ctx).
		SetQueryParam("user_id", userID).
		SetResult(&status).
		Get(profileStatusPath)
	if err != nil {
		return models.ProfileStatus{}, fmt.Errorf("profile status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpAccountAdapter.GetProfileStatus").
			Str("user_id", userID).Int("status", resp.StatusCode()).Msg("profile status request failed")
		return models.ProfileStatus{}, err
	}

	return status, nil
}

func (h *httpAccountAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
