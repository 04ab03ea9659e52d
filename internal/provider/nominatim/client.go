package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Place is a best-effort human-readable resolution of a coordinate.
type Place struct {
	DisplayName string
	Name        string
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// ReverseGeocode resolves a coordinate to a place name. A failed lookup
// is an error the caller reports; manual entry is the fallback.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (Place, []byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "14")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Place{}, nil, fmt.Errorf("create nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", "fishlog-cli/1.0 (+https://github.com/pcannon/fishlog-cli)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Place{}, nil, fmt.Errorf("execute nominatim request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Place{}, nil, fmt.Errorf("read nominatim response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Place{}, body, fmt.Errorf("nominatim request failed with status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Place{}, body, fmt.Errorf("decode nominatim response: %w", err)
	}
	if parsed.Error != "" {
		return Place{}, body, fmt.Errorf("nominatim: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.DisplayName) == "" {
		return Place{}, body, fmt.Errorf("no place found for %.5f, %.5f", lat, lng)
	}

	return Place{
		DisplayName: strings.TrimSpace(parsed.DisplayName),
		Name:        strings.TrimSpace(parsed.Name),
	}, body, nil
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Error       string `json:"error"`
}
