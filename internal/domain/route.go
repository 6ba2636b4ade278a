package domain

// Represents one directions request worth of stops.
// Start and End are inclusive indexes into the trip's stop list; adjacent
// chunks share a boundary stop so the drawn path stays continuous.
type RouteChunk struct {
	Index       int
	Start       int
	End         int
	Origin      Coordinates
	Destination Coordinates
	Waypoints   []Coordinates
}

// StopCount returns the number of stops the chunk spans.
func (c RouteChunk) StopCount() int { return c.End - c.Start + 1 }
