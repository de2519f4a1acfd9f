package maps

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      LatLng
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         LatLng{Lat: 35.0116, Lng: 135.7681},
			b:         LatLng{Lat: 35.0116, Lng: 135.7681},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Kyoto Station to Kinkaku-ji (~7km)",
			a:         LatLng{Lat: 34.9858, Lng: 135.7588},
			b:         LatLng{Lat: 35.0394, Lng: 135.7292},
			wantKm:    6.6,
			tolerance: 1.0,
		},
		{
			name:      "Tokyo to Osaka (~400km)",
			a:         LatLng{Lat: 35.6812, Lng: 139.7671},
			b:         LatLng{Lat: 34.7025, Lng: 135.4959},
			wantKm:    403,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := LatLng{Lat: 25.0, Lng: 121.0}
	b := LatLng{Lat: 26.0, Lng: 122.0}
	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestSortByDistance(t *testing.T) {
	type spot struct {
		name string
		km   float64
	}
	spots := []spot{{"c", 5.0}, {"a", 1.0}, {"b", 3.0}}

	SortByDistance(spots, func(s spot) float64 { return s.km })

	if spots[0].name != "a" || spots[1].name != "b" || spots[2].name != "c" {
		t.Errorf("unexpected sort order: %v", spots)
	}
}

func TestSortByDistance_Empty(t *testing.T) {
	var spots []LatLng
	SortByDistance(spots, func(l LatLng) float64 { return l.Lat })
}
