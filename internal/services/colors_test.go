package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignColors(t *testing.T) {
	colors := AssignColors(4)

	hues := make([]float64, 0, len(colors))
	for _, c := range colors {
		hues = append(hues, c.Hue)
	}
	assert.Equal(t, []float64{0, 90, 180, 270}, hues)
	assert.Equal(t, "hsl(90, 100%, 50%)", colors[1].CSS())
}

func TestAssignColorsEmpty(t *testing.T) {
	assert.Empty(t, AssignColors(0))
	assert.Empty(t, AssignColors(-1))
}

func TestAssignColorsDistinct(t *testing.T) {
	seen := make(map[float64]bool)
	for _, c := range AssignColors(7) {
		assert.False(t, seen[c.Hue], "duplicate hue %v", c.Hue)
		assert.GreaterOrEqual(t, c.Hue, 0.0)
		assert.Less(t, c.Hue, 360.0)
		seen[c.Hue] = true
	}
}
