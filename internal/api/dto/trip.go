package dto

type TripStopResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type TripSummaryResponse struct {
	Index      int     `json:"index"`
	Code       int     `json:"code"`
	Color      string  `json:"color"`
	Hue        float64 `json:"hue"`
	Vehicle    string  `json:"vehicle"`
	StopCount  int     `json:"stop_count"`
	ChunkCount int     `json:"chunk_count"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

type TripInfoResponse struct {
	Vehicle         string  `json:"vehicle"`
	Territory       string  `json:"territory"`
	CountryCode     string  `json:"country_code"`
	TripValue       float64 `json:"trip_value"`
	VehicleCost     float64 `json:"vehicle_cost"`
	DistanceCovered float64 `json:"distance_covered"`
	Code            int     `json:"code"`
}

type TripResponse struct {
	Index int                `json:"index"`
	Color string             `json:"color"`
	Info  TripInfoResponse   `json:"info"`
	Stops []TripStopResponse `json:"stops"`
}

type ChunkResponse struct {
	Index       int      `json:"index"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Origin      LatLng   `json:"origin"`
	Destination LatLng   `json:"destination"`
	Waypoints   []LatLng `json:"waypoints"`
}

type ListChunksResponse struct {
	TripIndex int             `json:"trip_index"`
	Chunks    []ChunkResponse `json:"chunks"`
}
