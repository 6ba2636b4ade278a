package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// RequestKey derives a stable cache key from a directions request.
// Coordinates are rounded to 6 decimals (about 10cm) so float noise does not
// split otherwise identical requests.
func RequestKey(req ports.DirectionsRequest) string {
	var b strings.Builder
	b.WriteString(string(req.Mode))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(req.Alternatives))

	writePoint := func(c domain.Coordinates) {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(c.Lat, 'f', 6, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c.Lon, 'f', 6, 64))
	}

	writePoint(req.Origin)
	for _, w := range req.Waypoints {
		writePoint(w)
	}
	writePoint(req.Destination)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
