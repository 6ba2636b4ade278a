package handlers

import (
	"net/http"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// TripHandler exposes the read-only trip list.
type TripHandler struct {
	Repo ports.TripRepository
}

// List renders the trip list view: one entry per trip with its color.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := services.ListTrips(r.Context(), h.Repo)
	if err != nil {
		writeDomainError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripsResponse{
		Trips: make([]dto.TripSummaryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			Index:      e.Index,
			Code:       e.Trip.Code,
			Color:      e.Color.CSS(),
			Hue:        e.Color.Hue,
			Vehicle:    e.Trip.Vehicle,
			StopCount:  len(e.Trip.Stops),
			ChunkCount: e.ChunkCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns a trip's info panel and stops.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(chi.URLParam(r, "index"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "trip index must be a non-negative integer")
		return
	}

	entries, err := services.ListTrips(r.Context(), h.Repo)
	if err != nil {
		writeDomainError(w, r, "get trip", err)
		return
	}
	if index >= len(entries) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	e := entries[index]
	stops := make([]dto.TripStopResponse, 0, len(e.Trip.Stops))
	for _, s := range e.Trip.Stops {
		stops = append(stops, dto.TripStopResponse{Name: s.Name, Lat: s.Lat, Lon: s.Lon})
	}

	writeJSON(w, r, http.StatusOK, dto.TripResponse{
		Index: e.Index,
		Color: e.Color.CSS(),
		Info:  tripInfo(e.Trip),
		Stops: stops,
	})
}

// Chunks returns the directions requests selecting the trip would issue,
// without calling the provider.
func (h *TripHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(chi.URLParam(r, "index"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "trip index must be a non-negative integer")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), index)
	if err != nil {
		writeDomainError(w, r, "get trip chunks", err)
		return
	}

	chunks, err := services.PlanChunks(trip)
	if err != nil {
		writeDomainError(w, r, "plan chunks", err)
		return
	}

	res := dto.ListChunksResponse{
		TripIndex: index,
		Chunks:    make([]dto.ChunkResponse, 0, len(chunks)),
	}
	for _, c := range chunks {
		res.Chunks = append(res.Chunks, dto.ChunkResponse{
			Index:       c.Index,
			Start:       c.Start,
			End:         c.End,
			Origin:      latLng(c.Origin),
			Destination: latLng(c.Destination),
			Waypoints:   latLngs(c.Waypoints),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func tripInfo(t domain.Trip) dto.TripInfoResponse {
	return dto.TripInfoResponse{
		Vehicle:         t.Vehicle,
		Territory:       t.Territory,
		CountryCode:     t.CountryCode,
		TripValue:       t.TripValue,
		VehicleCost:     t.VehicleCost,
		DistanceCovered: t.DistanceCovered,
		Code:            t.Code,
	}
}

func latLng(c domain.Coordinates) dto.LatLng {
	return dto.LatLng{Lat: c.Lat, Lng: c.Lon}
}

func latLngs(cs []domain.Coordinates) []dto.LatLng {
	out := make([]dto.LatLng, 0, len(cs))
	for _, c := range cs {
		out = append(out, latLng(c))
	}
	return out
}
