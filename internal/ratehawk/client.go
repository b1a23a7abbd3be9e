// Package ratehawk provides the HTTP client for the hotel inventory provider.
package ratehawk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/config"
	"utrippin_backend/platform/logger"
)

const (
	pathSearchHotel   = "/search/hp/"
	pathPrebook       = "/hotel/prebook/"
	pathBookingStart  = "/hotel/booking/start/"
	pathBookingCheck  = "/hotel/booking/check/"
	pathBookingCancel = "/hotel/booking/cancel/"
)

// Client is the HTTP client for the provider API. Credentials are resolved
// per call so a deployment without them fails with a configuration error
// instead of a broken request.
type Client struct {
	baseURL    string
	cfg        config.ProviderConfig
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a provider client. Every request is bounded by the configured
// timeout; an expired deadline is reported as a provider failure.
func New(cfg config.ProviderConfig, log *logger.Logger) *Client {
	timeout := cfg.GetProviderTimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.GetProviderBaseURL(), "/"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SearchHotel queries availability for a date range and guest configuration.
func (c *Client) SearchHotel(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, pathSearchHotel, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Prebook requests a short-lived price and availability lock for an offer.
func (c *Client) Prebook(ctx context.Context, req PrebookRequest) (*PrebookResponse, error) {
	var resp PrebookResponse
	if err := c.post(ctx, pathPrebook, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartBooking creates a reservation against a hold token.
func (c *Client) StartBooking(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.post(ctx, pathBookingStart, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckBooking retrieves the current state of an order. Read-only and
// idempotent; safe to call any number of times.
func (c *Client) CheckBooking(ctx context.Context, orderID string) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.post(ctx, pathBookingCheck, map[string]string{"order_id": orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelBooking requests release of a reservation.
func (c *Client) CancelBooking(ctx context.Context, orderID string) (*CancelResponse, error) {
	var resp CancelResponse
	if err := c.post(ctx, pathBookingCancel, map[string]string{"order_id": orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	creds, err := ResolveCredentials(c.cfg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "marshal provider payload", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "create provider request", err)
	}

	req.Header.Set("Authorization", creds.AuthorizationHeader())
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Upstream("provider unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.log.ProviderCall(path, url, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperr.Upstream(
			fmt.Sprintf("provider returned %d", resp.StatusCode),
			fmt.Errorf("%s: %s", path, strings.TrimSpace(string(data))),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream("malformed provider payload", err)
	}

	return nil
}
