package domain

import (
	"math"
	"testing"
)

func TestHaversineMilesKnownDistance(t *testing.T) {
	boston := GeoPoint{Lat: 42.3601, Lon: -71.0589}
	dallas := GeoPoint{Lat: 32.7767, Lon: -96.7970}

	d := HaversineMiles(boston, dallas)

	// Boston to Dallas is roughly 1550 great-circle miles.
	if d < 1500 || d > 1600 {
		t.Fatalf("Boston-Dallas distance = %.1f, want ~1550", d)
	}
}

func TestHaversineMilesMetricProperties(t *testing.T) {
	a := GeoPoint{Lat: 40.7128, Lon: -74.0060}
	b := GeoPoint{Lat: 41.8781, Lon: -87.6298}
	c := GeoPoint{Lat: 39.9526, Lon: -75.1652}

	if d := HaversineMiles(a, a); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	ab := HaversineMiles(a, b)
	ba := HaversineMiles(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("not symmetric: %f vs %f", ab, ba)
	}

	ac := HaversineMiles(a, c)
	cb := HaversineMiles(c, b)
	if ab > ac+cb+1e-9 {
		t.Errorf("triangle inequality violated: %f > %f + %f", ab, ac, cb)
	}
}

func TestValidCoordinates(t *testing.T) {
	if !(GeoPoint{Lat: 42.3601, Lon: -71.0589}).ValidCoordinates() {
		t.Error("valid point rejected")
	}
	if (GeoPoint{Lat: 91, Lon: 0}).ValidCoordinates() {
		t.Error("latitude 91 accepted")
	}
	if (GeoPoint{Lat: 0, Lon: -181}).ValidCoordinates() {
		t.Error("longitude -181 accepted")
	}
}
