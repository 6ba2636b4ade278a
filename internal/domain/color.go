package domain

import (
	"fmt"
	"strconv"
)

// Color is a fully saturated hue used to tell trips apart on the map.
type Color struct {
	Hue float64
}

// CSS returns the color as an hsl() expression with full saturation and 50% lightness.
func (c Color) CSS() string {
	return fmt.Sprintf("hsl(%s, 100%%, 50%%)", strconv.FormatFloat(c.Hue, 'f', -1, 64))
}
