package service

import (
	"context"

	"github.com/rs/zerolog"

	"tripplan/internal/infra"
	"tripplan/internal/maps"
	"tripplan/internal/modules/plan"
)

// DefaultAuditRadiusKm is how far a spot may lie from the geocoded
// destination before it is reported.
const DefaultAuditRadiusKm = 150.0

// Geocoder resolves a free-text place to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, address string) (maps.LatLng, error)
}

// Outlier is a spot or hotel that lies far from the requested destination.
type Outlier struct {
	Name       string
	DistanceKm float64
}

// TripPlanner runs the plan pipeline and, when a geocoder is configured,
// audits the validated plan for places far away from the destination.
// The audit only logs; it never changes or rejects a plan.
type TripPlanner struct {
	plans    *plan.Service
	geocoder Geocoder
	radiusKm float64
	logger   zerolog.Logger
}

// NewTripPlanner creates a TripPlanner. geocoder may be nil to disable the audit.
func NewTripPlanner(plans *plan.Service, geocoder Geocoder, radiusKm float64, logger zerolog.Logger) *TripPlanner {
	if radiusKm <= 0 {
		radiusKm = DefaultAuditRadiusKm
	}
	return &TripPlanner{
		plans:    plans,
		geocoder: geocoder,
		radiusKm: radiusKm,
		logger:   logger,
	}
}

// PlanTrip generates a validated plan for req in lang.
func (p *TripPlanner) PlanTrip(ctx context.Context, req plan.TravelRequest, lang plan.Language) (*plan.PlanResult, error) {
	res, err := p.plans.GenerateIn(ctx, req, lang)
	if err != nil {
		return nil, err
	}
	if p.geocoder != nil {
		p.audit(ctx, req.Destination, res)
	}
	return res, nil
}

func (p *TripPlanner) audit(ctx context.Context, destination string, res *plan.PlanResult) []Outlier {
	log := infra.LoggerFrom(ctx, p.logger)

	center, err := p.geocoder.Locate(ctx, destination)
	if err != nil {
		log.Warn().Err(err).Str("destination", destination).Msg("geo audit skipped")
		return nil
	}

	outliers := FarPlaces(center, res, p.radiusKm)
	if len(outliers) > 0 {
		names := make([]string, len(outliers))
		for i, o := range outliers {
			names[i] = o.Name
		}
		log.Warn().
			Str("destination", destination).
			Float64("radius_km", p.radiusKm).
			Strs("places", names).
			Float64("max_km", outliers[len(outliers)-1].DistanceKm).
			Msg("plan has places far from destination")
	}
	return outliers
}

// FarPlaces lists schedule spots and hotels farther than radiusKm from
// center, nearest first.
func FarPlaces(center maps.LatLng, res *plan.PlanResult, radiusKm float64) []Outlier {
	var out []Outlier
	check := func(name string, lat, lng float64) {
		d := maps.HaversineKm(center, maps.LatLng{Lat: lat, Lng: lng})
		if d > radiusKm {
			out = append(out, Outlier{Name: name, DistanceKm: d})
		}
	}
	for _, s := range res.Spots() {
		check(s.Place, s.Lat, s.Lng)
	}
	for _, h := range res.Hotels {
		check(h.Name, h.Lat, h.Lng)
	}
	maps.SortByDistance(out, func(o Outlier) float64 { return o.DistanceKm })
	return out
}
