package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"trip-route-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type TripStopSeed struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

type TripSeed struct {
	Stops           []TripStopSeed `json:"stops" yaml:"stops" validate:"min=1,dive"`
	Vehicle         string         `json:"vehicle" yaml:"vehicle"`
	Territory       string         `json:"territory" yaml:"territory"`
	CountryCode     string         `json:"countryCode" yaml:"countryCode"`
	TripValue       float64        `json:"tripValue" yaml:"tripValue"`
	VehicleCost     float64        `json:"vehicleCost" yaml:"vehicleCost"`
	DistanceCovered float64        `json:"distanceCovered" yaml:"distanceCovered" validate:"gte=0"`
	Code            int            `json:"code" yaml:"code"`
}

// Load the trip list from a JSON (.json) or YAML (.yaml, .yml) file.
func LoadTripsFromFile(path string) ([]domain.Trip, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load trips: read %q: %w", path, err)
	}

	var seeds []TripSeed
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(bytes, &seeds); err != nil {
			return nil, fmt.Errorf("load trips: parse json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &seeds); err != nil {
			return nil, fmt.Errorf("load trips: parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("load trips: unsupported file extension %q", ext)
	}

	trips, err := TripsFromSeeds(seeds)
	if err != nil {
		return nil, fmt.Errorf("load trips %q: %w", path, err)
	}
	return trips, nil
}

// Validate seeds and convert them to domain trips, preserving order.
func TripsFromSeeds(seeds []TripSeed) ([]domain.Trip, error) {
	v := validator.New()

	trips := make([]domain.Trip, 0, len(seeds))
	for i, s := range seeds {
		if err := v.Struct(s); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, fmt.Errorf("trip at index %d: field %s failed %q: %w",
					i, verrs[0].Namespace(), verrs[0].Tag(), domain.ErrValidation)
			}
			return nil, fmt.Errorf("trip at index %d: %w", i, err)
		}

		stops := make([]domain.TripStop, 0, len(s.Stops))
		for _, st := range s.Stops {
			stops = append(stops, domain.TripStop{
				Name: strings.TrimSpace(st.Name),
				Lat:  st.Lat,
				Lon:  st.Lon,
			})
		}

		trips = append(trips, domain.Trip{
			Stops:           stops,
			Vehicle:         s.Vehicle,
			Territory:       s.Territory,
			CountryCode:     s.CountryCode,
			TripValue:       s.TripValue,
			VehicleCost:     s.VehicleCost,
			DistanceCovered: s.DistanceCovered,
			Code:            s.Code,
		})
	}

	return trips, nil
}
