package convert

import (
	"math"
	"strconv"
	"strings"
)

// parseDecimal parses an integer channel in [0, 255].
func parseDecimal(s string) (uint8, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return uint8(n), true
}

// parseAlpha parses a real in [0, 1] and scales it to a byte.
// An empty capture means the format has no alpha: fully opaque.
func parseAlpha(s string) (uint8, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0xFF, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, false
	}
	return roundByte(f), true
}

// parsePercent parses "N%" with N in [0, 100]. A bare "0" is exactly zero.
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, true
	}
	digits, ok := strings.CutSuffix(s, "%")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return float64(n) / 100, true
}

// parseHue parses degrees in [0, 360]; 360 wraps to 0.
func parseHue(s string) (float64, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 360 {
		return 0, false
	}
	return float64(n % 360), true
}

// parseNibble expands one hex digit by duplication: "F" is 0xFF.
func parseNibble(s string) (uint8, bool) {
	if len(s) != 1 {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n)<<4 | uint8(n), true
}

// parseHexByte parses two hex digits.
func parseHexByte(s string) (uint8, bool) {
	if len(s) != 2 {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// roundByte maps [0, 1] to [0, 255], rounding half up.
func roundByte(f float64) uint8 {
	return uint8(math.Floor(clamp01(f)*255 + 0.5))
}

// roundInt rounds half up.
func roundInt(f float64) int {
	return int(math.Floor(f + 0.5))
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

// formatAlpha renders an alpha byte as a real with at most three decimals,
// enough for the byte to survive a parse.
func formatAlpha(a uint8) string {
	f := math.Round(float64(a)/255*1000) / 1000
	return strconv.FormatFloat(f, 'f', -1, 64)
}
