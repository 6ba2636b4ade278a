package cache

import (
	"trip-route-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

// DecodePath decodes a precision-5 encoded polyline into coordinates.
func DecodePath(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return []domain.Coordinates{}, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	path := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		path = append(path, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return path, nil
}

// EncodePath is the inverse of DecodePath. Precision beyond 1e-5 degrees is lost.
func EncodePath(path []domain.Coordinates) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
