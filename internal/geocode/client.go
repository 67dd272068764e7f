package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/postcode-locator/app/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single geocoder call. The client never retries;
// retry policy, if any, belongs to the caller.
const DefaultTimeout = 10 * time.Second

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client calls the Google Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a geocoding client. A zero timeout gets DefaultTimeout.
func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// ReverseGeocode resolves coordinates to an address. found is false when the
// upstream returns no result for the position.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (Result, bool, error) {
	params := url.Values{
		"latlng": {fmt.Sprintf("%.6f,%.6f", lat, lng)},
		"key":    {c.apiKey},
	}
	return c.doRequest(ctx, params, "reverse")
}

// Geocode resolves a free-text location query, biased to Nigeria.
func (c *Client) Geocode(ctx context.Context, query string) (Result, bool, error) {
	params := url.Values{
		"address":    {query},
		"components": {"country:NG"},
		"key":        {c.apiKey},
	}
	return c.doRequest(ctx, params, "forward")
}

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string             `json:"formatted_address"`
		AddressComponents []AddressComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

func (c *Client) doRequest(ctx context.Context, params url.Values, direction string) (Result, bool, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, false, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, false, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, false, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	c.logger.Debug("geocode call completed",
		zap.String("direction", direction),
		zap.String("status", body.Status),
		zap.Int("results", len(body.Results)),
		zap.Duration("duration", time.Since(start)))

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Result{}, false, nil
	default:
		return Result{}, false, fmt.Errorf("geocode request: status %s: %s", body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		return Result{}, false, nil
	}

	first := body.Results[0]
	return Result{
		FormattedAddress: first.FormattedAddress,
		Components:       first.AddressComponents,
		Coordinates: models.Coordinates{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, true, nil
}
