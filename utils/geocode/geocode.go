// Package geocode resolves task coordinates to display addresses. Results
// are display-only; nothing downstream depends on them, so failures collapse
// into a fixed fallback string instead of an error.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FallbackAddress is returned whenever an address cannot be resolved.
const FallbackAddress = "Unable to find address"

type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) string
}

// NominatimClient resolves coordinates against a Nominatim-compatible
// reverse-geocoding endpoint.
type NominatimClient struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns a human-readable address for the coordinate, or
// FallbackAddress when the lookup fails for any reason.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, latitude, longitude float64) string {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", latitude))
	query.Set("lon", fmt.Sprintf("%f", longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return FallbackAddress
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return FallbackAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackAddress
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return FallbackAddress
	}
	if result.DisplayName == "" {
		return FallbackAddress
	}

	return result.DisplayName
}
