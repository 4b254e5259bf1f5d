package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"trackmate/internal/tracker"
	"trackmate/internal/tripmap"
)

// APIClient talks to the three services with a shared cookie jar, so the
// auth cookie obtained at login rides along on every later call. It serves
// both as the tracker's pusher and as the map poller's trip API.
type APIClient struct {
	authURL     string
	tripURL     string
	locationURL string
	client      *http.Client
}

func NewAPIClient(authURL, tripURL, locationURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &APIClient{
		authURL:     authURL,
		tripURL:     tripURL,
		locationURL: locationURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

type User struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *APIClient) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, c.authURL+"/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	return out.User, err
}

func (c *APIClient) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodGet, c.authURL+"/auth/me", nil, &out)
	return out.User, err
}

type tripParticipant struct {
	Id     string `json:"id"`
	Status string `json:"status"`
	User   User   `json:"user"`
}

type tripDetail struct {
	Id           string            `json:"id"`
	Destination  string            `json:"destination"`
	Participants []tripParticipant `json:"participants"`
}

func (c *APIClient) Trip(ctx context.Context, tripId string) (tripmap.TripInfo, error) {
	detail, err := c.tripDetail(ctx, tripId)
	if err != nil {
		return tripmap.TripInfo{}, err
	}
	return tripmap.TripInfo{TripId: detail.Id, Destination: detail.Destination}, nil
}

// OwnParticipant resolves the caller's participant record on the trip.
func (c *APIClient) OwnParticipant(ctx context.Context, tripId, userId string) (string, error) {
	detail, err := c.tripDetail(ctx, tripId)
	if err != nil {
		return "", err
	}
	for _, p := range detail.Participants {
		if p.User.Id == userId {
			return p.Id, nil
		}
	}
	return "", fmt.Errorf("user %s is not a participant of trip %s", userId, tripId)
}

func (c *APIClient) tripDetail(ctx context.Context, tripId string) (tripDetail, error) {
	var out struct {
		Trip tripDetail `json:"trip"`
	}
	err := c.doJSON(ctx, http.MethodGet, c.tripURL+"/trips/"+tripId, nil, &out)
	return out.Trip, err
}

func (c *APIClient) TripLocations(ctx context.Context, tripId string) ([]tripmap.ParticipantLocation, string, error) {
	var out struct {
		TripId               string `json:"tripId"`
		Destination          string `json:"destination"`
		ParticipantLocations []struct {
			ParticipantId  string `json:"participantId"`
			UserId         string `json:"userId"`
			UserName       string `json:"userName"`
			UserEmail      string `json:"userEmail"`
			LatestLocation *struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"latestLocation"`
		} `json:"participantLocations"`
	}
	err := c.doJSON(ctx, http.MethodGet, c.locationURL+"/trips/"+tripId+"/locations", nil, &out)
	if err != nil {
		return nil, "", err
	}

	locations := make([]tripmap.ParticipantLocation, 0, len(out.ParticipantLocations))
	for _, pl := range out.ParticipantLocations {
		loc := tripmap.ParticipantLocation{
			ParticipantId: pl.ParticipantId,
			UserId:        pl.UserId,
			UserName:      pl.UserName,
			UserEmail:     pl.UserEmail,
		}
		if pl.LatestLocation != nil {
			loc.Location = &tripmap.LatLng{
				Lat: pl.LatestLocation.Latitude,
				Lng: pl.LatestLocation.Longitude,
			}
		}
		locations = append(locations, loc)
	}
	return locations, out.Destination, nil
}

func (c *APIClient) Geocode(ctx context.Context, address string) (tripmap.LatLng, error) {
	var out struct {
		Success bool    `json:"success"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Error   string  `json:"error"`
	}
	err := c.doJSON(ctx, http.MethodGet, c.tripURL+"/geocode?address="+url.QueryEscape(address), nil, &out)
	if err != nil {
		return tripmap.LatLng{}, err
	}
	if !out.Success {
		return tripmap.LatLng{}, fmt.Errorf("geocoding failed: %s", out.Error)
	}
	return tripmap.LatLng{Lat: out.Lat, Lng: out.Lng}, nil
}

func (c *APIClient) Route(ctx context.Context, from, to tripmap.LatLng) ([]tripmap.LatLng, error) {
	var out struct {
		Success bool `json:"success"`
		Route   struct {
			Path []tripmap.LatLng `json:"path"`
		} `json:"route"`
		Error string `json:"error"`
	}
	u := fmt.Sprintf("%s/directions?originLat=%f&originLng=%f&destLat=%f&destLng=%f",
		c.tripURL, from.Lat, from.Lng, to.Lat, to.Lng)
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("route lookup failed: %s", out.Error)
	}
	return out.Route.Path, nil
}

func (c *APIClient) PushLocation(ctx context.Context, participantId string, pos tracker.Position) error {
	body := map[string]interface{}{
		"latitude":  pos.Latitude,
		"longitude": pos.Longitude,
	}
	if pos.Accuracy != nil {
		body["accuracy"] = *pos.Accuracy
	}
	if pos.Heading != nil {
		body["heading"] = *pos.Heading
	}
	if pos.Speed != nil {
		body["speed"] = *pos.Speed
	}
	return c.doJSON(ctx, http.MethodPost, c.locationURL+"/locations/"+participantId, body, nil)
}

func (c *APIClient) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, url, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
