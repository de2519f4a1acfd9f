package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplan/internal/maps"
	"tripplan/internal/modules/plan"
)

const osakaPlan = `{
  "title": "Osaka Food Crawl",
  "days": [
    {"day": 1, "schedule": [
      {"time": "10:00", "place": "Dotonbori", "description": "Street food along the canal.", "lat": 34.6687, "lng": 135.5013},
      {"time": "15:00", "place": "Sapporo Clock Tower", "description": "Somehow in Hokkaido.", "lat": 43.0626, "lng": 141.3536}
    ]}
  ],
  "hotels": [
    {"name": "Namba Inn", "area": "Namba", "price": "9000 JPY", "features": ["station"], "lat": 34.6655, "lng": 135.5008}
  ]
}`

var osakaCenter = maps.LatLng{Lat: 34.6937, Lng: 135.5023}

type fixedGenerator struct{ out string }

func (g fixedGenerator) Generate(context.Context, string) (string, error) { return g.out, nil }

type stubGeocoder struct {
	at    maps.LatLng
	err   error
	calls int
}

func (s *stubGeocoder) Locate(context.Context, string) (maps.LatLng, error) {
	s.calls++
	return s.at, s.err
}

func osakaRequest() plan.TravelRequest {
	return plan.TravelRequest{
		Destination: "Osaka",
		Duration:    "day trip",
		Budget:      "budget",
		Companions:  "solo",
	}
}

func newPlanner(gen plan.Generator, geo Geocoder, buf *bytes.Buffer) *TripPlanner {
	logger := zerolog.New(buf)
	svc := plan.NewService(gen, plan.Options{Credential: "k", Provider: "stub", Logger: logger})
	return NewTripPlanner(svc, geo, 50, logger)
}

func TestPlanTrip_AuditLogsFarPlaces(t *testing.T) {
	var buf bytes.Buffer
	geo := &stubGeocoder{at: osakaCenter}
	p := newPlanner(fixedGenerator{out: osakaPlan}, geo, &buf)

	res, err := p.PlanTrip(context.Background(), osakaRequest(), plan.LangEnglish)
	require.NoError(t, err)
	assert.Len(t, res.Spots(), 2, "audit must not drop spots")
	assert.Equal(t, 1, geo.calls)
	assert.Contains(t, buf.String(), "plan has places far from destination")
	assert.Contains(t, buf.String(), "Sapporo Clock Tower")
}

func TestPlanTrip_GeocodeFailureKeepsPlan(t *testing.T) {
	var buf bytes.Buffer
	geo := &stubGeocoder{err: errors.New("quota exceeded")}
	p := newPlanner(fixedGenerator{out: osakaPlan}, geo, &buf)

	res, err := p.PlanTrip(context.Background(), osakaRequest(), plan.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Osaka Food Crawl", res.Title)
	assert.Contains(t, buf.String(), "geo audit skipped")
}

func TestPlanTrip_NoGeocoder(t *testing.T) {
	var buf bytes.Buffer
	p := newPlanner(fixedGenerator{out: osakaPlan}, nil, &buf)

	_, err := p.PlanTrip(context.Background(), osakaRequest(), plan.LangEnglish)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "far from destination")
}

func TestPlanTrip_FailureSkipsAudit(t *testing.T) {
	var buf bytes.Buffer
	geo := &stubGeocoder{at: osakaCenter}
	p := newPlanner(fixedGenerator{out: "not json"}, geo, &buf)

	_, err := p.PlanTrip(context.Background(), osakaRequest(), plan.LangEnglish)
	require.Error(t, err)
	assert.ErrorIs(t, err, plan.ErrMalformedOutput)
	assert.Zero(t, geo.calls)
}

func TestFarPlaces(t *testing.T) {
	res, err := plan.Validate(osakaPlan, plan.DaySpan{Min: 1, Max: 1})
	require.NoError(t, err)

	out := FarPlaces(osakaCenter, res, 50)
	require.Len(t, out, 1)
	assert.Equal(t, "Sapporo Clock Tower", out[0].Name)
	assert.Greater(t, out[0].DistanceKm, 900.0)

	assert.Empty(t, FarPlaces(osakaCenter, res, 2000))
}

func TestNewTripPlanner_DefaultRadius(t *testing.T) {
	p := NewTripPlanner(nil, nil, 0, zerolog.Nop())
	assert.InDelta(t, DefaultAuditRadiusKm, p.radiusKm, 1e-9)
}
