package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreateViewResponse struct {
	ViewID string `json:"view_id"`
}

type SelectTripRequest struct {
	TripIndex *int `json:"trip_index"`
	Wait      bool `json:"wait"`
}

type MarkerResponse struct {
	Position  LatLng `json:"position"`
	Label     string `json:"label,omitempty"`
	FillColor string `json:"fill_color"`
	Scale     int    `json:"scale"`
	Origin    bool   `json:"origin"`
}

type RendererResponse struct {
	ChunkIndex      int      `json:"chunk_index"`
	State           string   `json:"state"`
	Status          string   `json:"status,omitempty"`
	StrokeColor     string   `json:"stroke_color"`
	StrokeWeight    int      `json:"stroke_weight"`
	DistanceMeters  int      `json:"distance_meters"`
	DurationSeconds int      `json:"duration_seconds"`
	Path            []LatLng `json:"path"`
}

type MapViewResponse struct {
	ViewID       string             `json:"view_id"`
	Generation   uint64             `json:"generation"`
	SelectedTrip *int               `json:"selected_trip"`
	Color        string             `json:"color,omitempty"`
	Info         *TripInfoResponse  `json:"info"`
	Center       LatLng             `json:"center"`
	Zoom         int                `json:"zoom"`
	Markers      []MarkerResponse   `json:"markers"`
	Renderers    []RendererResponse `json:"renderers"`
}
