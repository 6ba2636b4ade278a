package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"

	"golang.org/x/time/rate"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-car"
)

// ORSDirectionsProvider implements DirectionsProvider using the
// OpenRouteService directions endpoint.
//
// Outbound calls are paced by a token bucket and transient failures are
// retried with backoff. A 4xx response other than 429 is reported as a
// *ports.StatusError and never retried.
//
// The provider is safe for concurrent use.
type ORSDirectionsProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

type ORSOption func(*ORSDirectionsProvider)

// WithORSBaseURL points the provider at a different ORS deployment.
func WithORSBaseURL(baseURL string) ORSOption {
	return func(o *ORSDirectionsProvider) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithORSRateLimit caps outbound requests per second. Zero or less disables pacing.
func WithORSRateLimit(qps float64) ORSOption {
	return func(o *ORSDirectionsProvider) {
		if qps <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(qps), max(1, int(math.Ceil(qps))))
	}
}

// WithORSRetry overrides the attempt count and initial backoff.
func WithORSRetry(maxAttempts int, backoff time.Duration) ORSOption {
	return func(o *ORSDirectionsProvider) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		if backoff > 0 {
			o.backoff = backoff
		}
	}
}

func NewORSDirectionsProvider(apiKey string, opts ...ORSOption) (*ORSDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDirectionsProvider{
		session:     &http.Client{Timeout: 15 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultORSBaseURL,
		profile:     defaultORSProfile,
		limiter:     rate.NewLimiter(rate.Limit(10), 10),
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

type orsAlternatives struct {
	TargetCount int `json:"target_count"`
}

type orsDirectionsRequest struct {
	Coordinates       [][]float64      `json:"coordinates"`
	AlternativeRoutes *orsAlternatives `json:"alternative_routes,omitempty"`
}

type orsDirectionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

type orsErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Route fetches a driving route through the request's points.
func (o *ORSDirectionsProvider) Route(
	ctx context.Context,
	req ports.DirectionsRequest,
) (_ ports.DirectionsResult, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if req.Mode != "" && req.Mode != ports.TravelModeDriving {
		return ports.DirectionsResult{}, fmt.Errorf("ors route: unsupported travel mode %q", req.Mode)
	}

	coords := make([][]float64, 0, 2+len(req.Waypoints))
	coords = append(coords, req.Origin.CoordsToList())
	for _, w := range req.Waypoints {
		coords = append(coords, w.CoordsToList())
	}
	coords = append(coords, req.Destination.CoordsToList())

	bodyObj := orsDirectionsRequest{Coordinates: coords}
	// ORS only computes alternatives for plain origin->destination requests.
	if req.Alternatives && len(coords) == 2 {
		bodyObj.AlternativeRoutes = &orsAlternatives{TargetCount: 2}
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return ports.DirectionsResult{}, statusFromHTTP(he)
		}
		return ports.DirectionsResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.DirectionsResult{}, &ports.StatusError{Status: "ZERO_RESULTS"}
	}

	route := dr.Routes[0]
	path, err := cache.DecodePath(route.Geometry)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode route geometry: %w", err)
	}

	// ORS returns float metrics; round to nearest integer for domain consistency.
	return ports.DirectionsResult{
		Status:          ports.StatusOK,
		Path:            path,
		DistanceMeters:  int(math.Round(route.Summary.Distance)),
		DurationSeconds: int(math.Round(route.Summary.Duration)),
	}, nil
}

// statusFromHTTP turns a final ORS HTTP failure into a provider status.
func statusFromHTTP(he *httpStatusError) *ports.StatusError {
	se := &ports.StatusError{
		Status:  fmt.Sprintf("HTTP_%d", he.Code),
		Message: he.Body,
	}

	var body orsErrorResponse
	if err := json.Unmarshal([]byte(he.Body), &body); err == nil && body.Error.Message != "" {
		se.Message = body.Error.Message
	}

	return se
}
