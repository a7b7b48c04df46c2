package units

import (
	"math"
	"testing"
)

func TestFromMillis(t *testing.T) {
	tests := []struct {
		name     string
		ms       float64
		unit     string
		expected float64
		wantErr  bool
	}{
		{"gct to seconds", 250, S, 0.25, false},
		{"flight stays ms", 400, MS, 400, false},
		{"zero", 0, S, 0, false},
		{"sub-millisecond", 0.5, S, 0.0005, false},
		{"unknown unit", 250, "min", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMillis(tt.ms, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromMillis(%v, %q) error = %v, wantErr %v", tt.ms, tt.unit, err, tt.wantErr)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("FromMillis(%v, %q) = %v, want %v", tt.ms, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestToMillisInvertsFromMillis(t *testing.T) {
	for _, unit := range ValidUnits {
		for _, ms := range []float64{0, 33.3, 250, 1999} {
			v, err := FromMillis(ms, unit)
			if err != nil {
				t.Fatal(err)
			}
			back, err := ToMillis(v, unit)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(back-ms) > 1e-9 {
				t.Errorf("%s round trip of %v gave %v", unit, ms, back)
			}
		}
	}
	if _, err := ToMillis(1, "h"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(450); got != 0.45 {
		t.Errorf("Seconds(450) = %v, want 0.45", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		unit     string
		expected bool
	}{
		{"ms", true},
		{"s", true},
		{"mph", false},
		{"", false},
		{"MS", false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.unit); got != tt.expected {
			t.Errorf("IsValid(%q) = %v, want %v", tt.unit, got, tt.expected)
		}
	}
}

func TestGetValidUnitsString(t *testing.T) {
	if got := GetValidUnitsString(); got != "ms, s" {
		t.Errorf("GetValidUnitsString() = %q", got)
	}
}
