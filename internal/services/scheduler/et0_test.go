package scheduler

import (
	"math"
	"testing"
)

func TestEstimateET0NonNegative(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		humidity float64
		wind     float64
	}{
		{"hot dry windy", 45, 10, 12},
		{"warm humid calm", 25, 95, 0},
		{"freezing", -10, 50, 5},
		{"very cold", -25, 80, 3},
		{"wind term pole saturated", -15, 100, 3},
		{"wind term pole calm", -15, 50, 0},
		{"near pole", -15.0000001, 40, 6},
		{"saturated air", 30, 100, 8},
		{"zero everything", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateET0(tt.temp, tt.humidity, tt.wind, nil)
			if got < 0 || math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("EstimateET0(%v, %v, %v) = %v, want >= 0", tt.temp, tt.humidity, tt.wind, got)
			}
		})
	}
}

func TestEstimateET0TypicalSummerDay(t *testing.T) {
	// 30°C, 40% humidity, 3 m/s wind, radiation estimated from temperature.
	got := EstimateET0(30, 40, 3, nil)
	if got <= 0 {
		t.Fatalf("EstimateET0(30, 40, 3) = %v, want > 0", got)
	}
}

func TestEstimateET0SuppliedRadiation(t *testing.T) {
	low := 2.0
	high := 25.0
	etLow := EstimateET0(30, 40, 3, &low)
	etHigh := EstimateET0(30, 40, 3, &high)
	if etHigh <= etLow {
		t.Errorf("more radiation should not lower ET0: low=%v high=%v", etLow, etHigh)
	}
}

func TestEstimateET0HumidityReducesDemand(t *testing.T) {
	dry := EstimateET0(30, 20, 3, nil)
	humid := EstimateET0(30, 90, 3, nil)
	if humid >= dry {
		t.Errorf("higher humidity should reduce ET0: dry=%v humid=%v", dry, humid)
	}
}
