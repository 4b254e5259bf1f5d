// Package maps wraps the Google Maps web service APIs used by the trip
// planner: forward geocoding for destination addresses and driving
// directions for participant routes.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://maps.googleapis.com"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is one driving route between two points. Path is the decoded
// overview polyline.
type Route struct {
	Path            []LatLng
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API host. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	u := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	var out struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
		ErrorMessage string `json:"error_message"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return LatLng{}, err
	}

	if out.Status != "OK" || len(out.Results) == 0 {
		if out.ErrorMessage != "" {
			return LatLng{}, fmt.Errorf("geocoding failed: %s (%s)", out.Status, out.ErrorMessage)
		}
		return LatLng{}, fmt.Errorf("geocoding failed: %s", out.Status)
	}

	return out.Results[0].Geometry.Location, nil
}

// Directions computes the shortest driving route between origin and
// destination.
func (c *Client) Directions(ctx context.Context, origin, dest LatLng) (Route, error) {
	u := fmt.Sprintf("%s/maps/api/directions/json?origin=%f,%f&destination=%f,%f&mode=driving&key=%s",
		c.baseURL, origin.Lat, origin.Lng, dest.Lat, dest.Lng, url.QueryEscape(c.apiKey))

	var out struct {
		Status string `json:"status"`
		Routes []struct {
			OverviewPolyline struct {
				Points string `json:"points"`
			} `json:"overview_polyline"`
			Legs []struct {
				Distance struct {
					Value int    `json:"value"`
					Text  string `json:"text"`
				} `json:"distance"`
				Duration struct {
					Value int    `json:"value"`
					Text  string `json:"text"`
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
		ErrorMessage string `json:"error_message"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return Route{}, err
	}

	if out.Status != "OK" || len(out.Routes) == 0 {
		return Route{}, fmt.Errorf("directions failed: %s", out.Status)
	}

	r := out.Routes[0]
	route := Route{Path: DecodePolyline(r.OverviewPolyline.Points)}
	if len(r.Legs) > 0 {
		route.DistanceMeters = r.Legs[0].Distance.Value
		route.DistanceText = r.Legs[0].Distance.Text
		route.DurationSeconds = r.Legs[0].Duration.Value
		route.DurationText = r.Legs[0].Duration.Text
	}
	return route, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
