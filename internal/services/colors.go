package services

import "trip-route-service/internal/domain"

// AssignColors returns one color per trip index, evenly spaced around the hue wheel.
// A count of zero or less yields an empty slice.
func AssignColors(count int) []domain.Color {
	colors := make([]domain.Color, 0, max(count, 0))
	for i := 0; i < count; i++ {
		colors = append(colors, domain.Color{Hue: float64(i) * 360 / float64(count)})
	}
	return colors
}
