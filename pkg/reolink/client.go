package reolink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/reolink-tools/fwcheck/pkg/defaults"
	"github.com/reolink-tools/fwcheck/pkg/errors"
)

const (
	// DefaultBaseURL is the vendor site root.
	DefaultBaseURL = "https://reolink.com"

	// DownloadCenterURL is the page humans use in the manual flow.
	DownloadCenterURL = DefaultBaseURL + "/download-center/"

	// firmwarePath is the wp-json endpoint behind the download center.
	firmwarePath = "/wp-json/reo-v2/download/firmware/"

	userAgent = "fwcheck/1.0"

	// maxResponseBytes caps the vendor response body read.
	maxResponseBytes = 4 << 20
)

// Firmware is one downloadable firmware build for a device.
type Firmware struct {
	ID        int64  `json:"id"`
	Version   string `json:"version"`
	URL       string `json:"url,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the vendor endpoint, used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client queries the Reolink download API for published firmware builds.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client with the default transport timeouts.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: defaults.HTTPClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   defaults.HTTPConnectTimeout,
					KeepAlive: defaults.HTTPKeepAlive,
				}).DialContext,
				TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
				ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
				IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse mirrors the wp-json download endpoint payload.
type apiResponse struct {
	Result struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"result"`
	Data []struct {
		Title     string     `json:"title"`
		Firmwares []Firmware `json:"firmwares"`
	} `json:"data"`
}

// LatestFirmware fetches the published firmware list for the given catalog
// identifiers and returns the newest build by the vendor's updated_at
// timestamp. Version strings are returned verbatim; parsing and ordering are
// the caller's concern.
func (c *Client) LatestFirmware(ctx context.Context, productID, hardwareID int) (*Firmware, error) {
	u, err := url.Parse(c.baseURL + firmwarePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "invalid vendor endpoint", err)
	}
	q := u.Query()
	q.Set("dlProductId", strconv.Itoa(productID))
	q.Set("hardwareVersion", strconv.Itoa(hardwareID))
	q.Set("lang", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to build vendor request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", DownloadCenterURL)

	slog.Debug("calling vendor firmware api",
		"productID", productID,
		"hardwareID", hardwareID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "vendor api call timed out", err)
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "vendor api call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewWithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("vendor api returned status %d", resp.StatusCode),
			map[string]any{"status": resp.StatusCode})
	}

	var payload apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to decode vendor response", err)
	}

	return latestFromResponse(&payload)
}

// latestFromResponse picks the newest firmware entry from a decoded payload.
func latestFromResponse(payload *apiResponse) (*Firmware, error) {
	if len(payload.Data) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "vendor response contains no products")
	}

	// The first product entry corresponds to the requested model.
	firmwares := payload.Data[0].Firmwares
	if len(firmwares) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "vendor response contains no firmware builds")
	}

	latest := firmwares[0]
	for _, fw := range firmwares[1:] {
		if fw.UpdatedAt > latest.UpdatedAt {
			latest = fw
		}
	}

	if latest.Version == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "latest firmware entry has no version")
	}

	slog.Debug("vendor reported latest firmware",
		"version", latest.Version,
		"updatedAt", time.UnixMilli(latest.UpdatedAt).UTC(),
	)

	return &latest, nil
}
