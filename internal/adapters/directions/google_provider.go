package directions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"

	"googlemaps.github.io/maps"
)

// GoogleDirectionsProvider implements DirectionsProvider with the Google
// Maps Directions API.
type GoogleDirectionsProvider struct {
	client *maps.Client
}

// NewGoogleDirectionsProvider builds a client for apiKey. Extra options
// (base URL, rate limit, HTTP client) are passed through to maps.NewClient.
func NewGoogleDirectionsProvider(apiKey string, opts ...maps.ClientOption) (*GoogleDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleDirectionsProvider{client: client}, nil
}

// Route requests driving directions and flattens the first route into one path.
func (g *GoogleDirectionsProvider) Route(
	ctx context.Context,
	req ports.DirectionsRequest,
) (_ ports.DirectionsResult, err error) {
	defer obs.Time(ctx, "google.Route")(&err)

	if req.Mode != "" && req.Mode != ports.TravelModeDriving {
		return ports.DirectionsResult{}, fmt.Errorf("google route: unsupported travel mode %q", req.Mode)
	}

	waypoints := make([]string, 0, len(req.Waypoints))
	for _, w := range req.Waypoints {
		waypoints = append(waypoints, w.String())
	}

	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:       req.Origin.String(),
		Destination:  req.Destination.String(),
		Waypoints:    waypoints,
		Mode:         maps.TravelModeDriving,
		Alternatives: req.Alternatives,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.DirectionsResult{}, ctxErr
		}
		if se := parseMapsStatus(err); se != nil {
			return ports.DirectionsResult{}, se
		}
		return ports.DirectionsResult{}, fmt.Errorf("google directions: %w", err)
	}

	if len(routes) == 0 {
		return ports.DirectionsResult{}, &ports.StatusError{Status: "ZERO_RESULTS"}
	}

	route := routes[0]
	points, err := route.OverviewPolyline.Decode()
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode overview polyline: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(points))
	for _, p := range points {
		path = append(path, domain.Coordinates{Lat: p.Lat, Lon: p.Lng})
	}

	res := ports.DirectionsResult{Status: ports.StatusOK, Path: path}
	for _, leg := range route.Legs {
		res.DistanceMeters += leg.Distance.Meters
		res.DurationSeconds += int(leg.Duration.Seconds())
	}

	return res, nil
}

// parseMapsStatus extracts the API status from the client's
// "maps: STATUS - message" errors. It returns nil for transport errors.
func parseMapsStatus(err error) *ports.StatusError {
	rest, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return nil
	}

	status, msg, _ := strings.Cut(rest, " - ")
	status = strings.TrimSpace(status)
	if status == "" || strings.ContainsAny(status, " :") || strings.ToUpper(status) != status {
		return nil
	}

	return &ports.StatusError{Status: status, Message: strings.TrimSpace(msg)}
}
