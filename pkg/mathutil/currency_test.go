package mathutil

import (
	"math"
	"testing"
)

func TestRoundFixed(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int
		expected float64
	}{
		{"Repeating MPG", 200.0 / 15.0, 4, 13.3333},
		{"Whole MPG", 10.0, 4, 10.0},
		{"Exact binary tie rounds away from zero", 10.03125, 4, 10.0313},
		{"Exact binary tie at two places", 0.125, 2, 0.13},
		{"Binary value just below decimal tie", 1.005, 2, 1.0},
		{"Negative tie rounds away from zero", -2.5, 0, -3},
		{"Positive tie at zero places", 2.5, 0, 3},
		{"Small value rounds to zero", 0.00001, 4, 0},
		{"Zero", 0, 4, 0},
		{"Large value", 123456.789012, 4, 123456.789},
		{"Negative repeating", -200.0 / 15.0, 4, -13.3333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundFixed(tt.input, tt.places)
			if result != tt.expected {
				t.Errorf("RoundFixed(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestRoundFixedSpecialValues(t *testing.T) {
	if !math.IsNaN(RoundFixed(math.NaN(), 4)) {
		t.Errorf("RoundFixed(NaN) should stay NaN")
	}
	if !math.IsInf(RoundFixed(math.Inf(1), 4), 1) {
		t.Errorf("RoundFixed(+Inf) should stay +Inf")
	}
	if got := RoundFixed(1.23456, -1); got != 1.23456 {
		t.Errorf("RoundFixed with negative places should be a no-op, got %v", got)
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{"First larger", 2.0, 1.0, 2.0},
		{"Second larger", 1.0, 2.0, 2.0},
		{"Equal values", 1.0, 1.0, 1.0},
		{"Zero and negative", 0.0, -1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Max(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Max(%v, %v) = %v, expected %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestDivisorOrOne(t *testing.T) {
	if got := DivisorOrOne(0); got != 1 {
		t.Errorf("DivisorOrOne(0) = %v, expected 1", got)
	}
	if got := DivisorOrOne(13.3333); got != 13.3333 {
		t.Errorf("DivisorOrOne(13.3333) = %v, expected 13.3333", got)
	}
}

func TestSum(t *testing.T) {
	if got := Sum(); got != 0 {
		t.Errorf("Sum() = %v, expected 0", got)
	}
	a, b, c := 0.1, 0.2, 0.3
	if got := Sum(a, b, c); got != (a+b)+c {
		t.Errorf("Sum should add left to right, got %v", got)
	}
}
