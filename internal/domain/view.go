package domain

// RendererState tracks the lifecycle of one chunk renderer.
type RendererState string

const (
	RendererPending   RendererState = "pending"
	RendererOK        RendererState = "ok"
	RendererFailed    RendererState = "failed"
	RendererCancelled RendererState = "cancelled"
)

// Renderer is the drawn result of a single route chunk.
// Slots are pre-allocated per chunk and addressed by ChunkIndex, so
// responses arriving out of order still land in the right place.
type Renderer struct {
	ChunkIndex      int
	State           RendererState
	StrokeColor     Color
	StrokeWeight    int
	Path            []Coordinates
	DistanceMeters  int
	DurationSeconds int
	Status          string
}

// Marker is a stop pin on the map.
type Marker struct {
	Position  Coordinates
	Label     string
	FillColor string
	Scale     int
	Origin    bool
}

// MapView is a point-in-time copy of a view's map state.
type MapView struct {
	SelectedTrip *int
	Generation   uint64
	Trip         *Trip
	Color        *Color
	Center       Coordinates
	Zoom         int
	Markers      []Marker
	Renderers    []Renderer
}

// Default map framing for views.
var (
	DefaultCenter = Coordinates{Lat: 0.520373121, Lon: -1.287611459}
	DefaultZoom   = 8
)
