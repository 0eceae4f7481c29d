package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// directionsAPIURL is the MapQuest Directions API endpoint.
	directionsAPIURL = "https://www.mapquestapi.com/directions/v2/route"

	// requestTimeout is the maximum duration for a directions API call.
	requestTimeout = 5 * time.Second

	// statusNoRoute is the provider status code that signals there is no
	// drivable route between the requested locations.
	statusNoRoute = 402

	// statusOK is the provider status code for a successful route.
	statusOK = 0

	// httpMaxIdleConns is the maximum number of idle (keep-alive)
	// connections kept in the transport pool.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection is kept in the
	// pool before being closed.
	httpIdleConnTimeout = 30 * time.Second
)

// MapQuestRouter implements Router using the MapQuest Directions API.
type MapQuestRouter struct {
	apiKey     string
	httpClient *http.Client
	// apiURL is the directions endpoint. Overrideable in tests.
	apiURL string
}

// NewMapQuestRouter creates a Router backed by the MapQuest Directions API.
func NewMapQuestRouter(apiKey string) *MapQuestRouter {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &MapQuestRouter{
		apiKey: apiKey,
		apiURL: directionsAPIURL,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// Route queries the directions API for the route between two "town,Country"
// labels. No retries are attempted; transient failures surface as
// ErrProviderUnavailable and the decision to retry belongs to the caller.
func (m *MapQuestRouter) Route(ctx context.Context, origin, destination string) (*Result, error) {
	locations, err := json.Marshal(map[string][]string{"locations": {origin, destination}})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal locations: %v", ErrProviderUnavailable, err)
	}

	query := url.Values{}
	query.Set("key", m.apiKey)
	query.Set("json", string(locations))

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, m.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrProviderUnavailable, err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var apiResp directionsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", ErrProviderUnavailable, err)
	}

	switch apiResp.Info.StatusCode {
	case statusOK:
	case statusNoRoute:
		return nil, fmt.Errorf("%w: %s -> %s", ErrRouteNotDrivable, origin, destination)
	default:
		return nil, fmt.Errorf("%w: provider status %d", ErrProviderUnavailable, apiResp.Info.StatusCode)
	}

	return &Result{
		DistanceMiles: apiResp.Route.Distance,
		FormattedTime: apiResp.Route.FormattedTime,
		StatusCode:    apiResp.Info.StatusCode,
	}, nil
}

// --- JSON types for the MapQuest Directions API ---

type directionsResponse struct {
	Route struct {
		Distance      float64 `json:"distance"`
		FormattedTime string  `json:"formattedTime"`
	} `json:"route"`
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
}
