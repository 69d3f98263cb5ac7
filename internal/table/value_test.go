package table

import (
	"math"
	"testing"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", nil},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"3.0", 3.0},
		{"1e3", 1000.0},
		{"true", true},
		{"FALSE", false},
		{"True", true},
		{"hello", "hello"},
		{"12abc", "12abc"},
		{" 5", " 5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseCell(tt.input)
			if got != tt.want {
				t.Errorf("ParseCell(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", int64(12), "12"},
		{"integral float keeps point", 3.0, "3.0"},
		{"fraction", 0.25, "0.25"},
		{"exponent", 1e21, "1e+21"},
		{"nan", math.NaN(), ""},
		{"inf", math.Inf(1), "inf"},
		{"string", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCell(tt.input); got != tt.want {
				t.Errorf("FormatCell(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []any{int64(0), int64(-12), 3.0, 0.1, true, false, "text", nil}
	for _, v := range values {
		got := ParseCell(FormatCell(v))
		if got != v {
			t.Errorf("ParseCell(FormatCell(%#v)) = %#v", v, got)
		}
	}
}
