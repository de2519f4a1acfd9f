package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrNoResult is returned when the geocoder finds nothing for an address.
var ErrNoResult = errors.New("maps: no geocoding result")

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// GeocodeService resolves free-text places with the Google Geocoding API.
type GeocodeService struct {
	client   *maps.Client
	language string
}

// NewGeocodeService creates a new GeocodeService with the given API Key.
func NewGeocodeService(apiKey, language string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, language: language}, nil
}

// Locate returns the coordinates of the best match for address.
func (s *GeocodeService) Locate(ctx context.Context, address string) (LatLng, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: s.language,
	})
	if err != nil {
		return LatLng{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return LatLng{}, ErrNoResult
	}
	loc := results[0].Geometry.Location
	return LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}
