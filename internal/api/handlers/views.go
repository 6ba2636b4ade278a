package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Upper bound on how long a select request with wait=true holds the connection.
const maxSelectWait = 60 * time.Second

// ViewHandler exposes map view sessions.
type ViewHandler struct {
	Views *services.ViewRegistry
}

// Create opens an empty view.
func (h *ViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := h.Views.Create()
	writeJSON(w, r, http.StatusCreated, dto.CreateViewResponse{ViewID: id.String()})
}

// Get returns the current map state of a view.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, mapViewResponse(id, view.Snapshot()))
}

// Select switches the view to a trip and starts fetching its routes.
// With wait=true the response is delayed until every chunk has settled.
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.SelectTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.TripIndex == nil {
		writeError(w, r, http.StatusBadRequest, "trip_index is required")
		return
	}

	if err := view.Select(r.Context(), *req.TripIndex); err != nil {
		writeDomainError(w, r, "select trip", err)
		return
	}

	if req.Wait {
		ctx, cancel := context.WithTimeout(r.Context(), maxSelectWait)
		defer cancel()
		// A timed-out wait still returns the partial snapshot.
		_ = view.Wait(ctx)
	}

	writeJSON(w, r, http.StatusOK, mapViewResponse(id, view.Snapshot()))
}

// ClearSelection drops the view's selection and renderers.
func (h *ViewHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}
	view.Clear()
	writeJSON(w, r, http.StatusOK, mapViewResponse(id, view.Snapshot()))
}

// Delete closes a view.
func (h *ViewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid view id")
		return
	}
	if err := h.Views.Delete(id); err != nil {
		writeDomainError(w, r, "delete view", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ViewHandler) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *services.TripView, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid view id")
		return uuid.Nil, nil, false
	}

	view, err := h.Views.Get(id)
	if err != nil {
		writeDomainError(w, r, "get view", err)
		return uuid.Nil, nil, false
	}
	return id, view, true
}

func mapViewResponse(id uuid.UUID, v domain.MapView) dto.MapViewResponse {
	res := dto.MapViewResponse{
		ViewID:       id.String(),
		Generation:   v.Generation,
		SelectedTrip: v.SelectedTrip,
		Center:       latLng(v.Center),
		Zoom:         v.Zoom,
		Markers:      make([]dto.MarkerResponse, 0, len(v.Markers)),
		Renderers:    make([]dto.RendererResponse, 0, len(v.Renderers)),
	}

	if v.Color != nil {
		res.Color = v.Color.CSS()
	}
	if v.Trip != nil {
		info := tripInfo(*v.Trip)
		res.Info = &info
	}

	for _, m := range v.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Position:  latLng(m.Position),
			Label:     m.Label,
			FillColor: m.FillColor,
			Scale:     m.Scale,
			Origin:    m.Origin,
		})
	}

	for _, rd := range v.Renderers {
		res.Renderers = append(res.Renderers, dto.RendererResponse{
			ChunkIndex:      rd.ChunkIndex,
			State:           string(rd.State),
			Status:          rd.Status,
			StrokeColor:     rd.StrokeColor.CSS(),
			StrokeWeight:    rd.StrokeWeight,
			DistanceMeters:  rd.DistanceMeters,
			DurationSeconds: rd.DurationSeconds,
			Path:            latLngs(rd.Path),
		})
	}

	return res
}
