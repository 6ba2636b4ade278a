package domain

// A single geographic point visited within a trip.
type TripStop struct {
	Name string
	Lat  float64
	Lon  float64
}

// Return the stop position as Coordinates.
func (s TripStop) Coordinates() Coordinates {
	return Coordinates{Lat: s.Lat, Lon: s.Lon}
}

// Represents an ordered itinerary of stops with its logistics metadata.
// Stop order is visit order. Trips carry no identifier of their own and are
// addressed by their position in the trip list.
type Trip struct {
	Stops           []TripStop
	Vehicle         string
	Territory       string
	CountryCode     string
	TripValue       float64
	VehicleCost     float64
	DistanceCovered float64
	Code            int
}
