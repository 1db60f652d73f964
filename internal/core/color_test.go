package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		ok       bool
	}{
		{"red", ColorRed, true},
		{"Bright-Cyan", ColorBrightCyan, true},
		{"bright_yellow", ColorBrightYellow, true},
		{"grey", ColorGray, true},
		{"ultraviolet", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestNearestColor(t *testing.T) {
	tests := []struct {
		rgb      uint32
		expected Color
	}{
		{0xffff00, ColorBrightYellow},
		{0xff8800, ColorOrange},
		{0x0000f0, ColorBlue},
		{0xffffff, ColorBrightWhite},
		{0x8a8a8a, ColorGray},
	}

	for _, tc := range tests {
		if got := NearestColor(tc.rgb); got != tc.expected {
			t.Errorf("NearestColor(%#06x) = %v, expected %v", tc.rgb, got, tc.expected)
		}
	}
}
