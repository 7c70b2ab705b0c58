package geofence

import "testing"

func TestCalculateHaversineDistance_SamePoint(t *testing.T) {
	d := CalculateHaversineDistance(12.9716, 77.5946, 12.9716, 77.5946)
	if d > 0.001 {
		t.Errorf("distance between identical points = %f, want ~0", d)
	}
}

func TestCalculateHaversineDistance_KnownDistance(t *testing.T) {
	// Bangalore to Chennai is roughly 290km.
	d := CalculateHaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
	if d < 280000 || d > 300000 {
		t.Errorf("distance = %f meters, want roughly 290000", d)
	}
}

func TestEvaluate_NoOfficesConfigured(t *testing.T) {
	result := Evaluate(12.9716, 77.5946, nil, nil)
	if !result.Flagged {
		t.Error("Evaluate with no offices should flag")
	}
	if result.Reason != "No office locations configured" {
		t.Errorf("Reason = %q, want %q", result.Reason, "No office locations configured")
	}
}

func TestEvaluate_InsideRadius(t *testing.T) {
	offices := []Office{{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}}
	result := Evaluate(12.9716, 77.5946, nil, offices)
	if result.Flagged {
		t.Error("Evaluate at the office's own coordinates should not flag")
	}
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	offices := []Office{{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}}
	result := Evaluate(13.0827, 80.2707, nil, offices)
	if !result.Flagged {
		t.Error("Evaluate far from every office should flag")
	}
	if result.Reason != "Outside office premises" {
		t.Errorf("Reason = %q, want %q", result.Reason, "Outside office premises")
	}
}

func TestEvaluate_AccuracyTooLow(t *testing.T) {
	offices := []Office{{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}}
	accuracy := 75.0
	result := Evaluate(12.9716, 77.5946, &accuracy, offices)
	if !result.Flagged {
		t.Error("Evaluate with poor accuracy should flag even at the office")
	}
	if result.Reason != "GPS accuracy too low" {
		t.Errorf("Reason = %q, want %q", result.Reason, "GPS accuracy too low")
	}
}

func TestEvaluate_MultipleOffices_SecondMatches(t *testing.T) {
	offices := []Office{
		{Latitude: 13.0827, Longitude: 80.2707, RadiusMeters: 100},
		{Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100},
	}
	result := Evaluate(12.9716, 77.5946, nil, offices)
	if result.Flagged {
		t.Error("Evaluate near the second office should not flag")
	}
}
