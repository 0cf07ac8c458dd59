// Package geo converts geographic coordinates between decimal degrees and
// degrees/minutes/seconds text.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NotAvailable is rendered in place of a coordinate that is missing or cannot be shown.
const NotAvailable = "N/A"

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// dmsPattern is shared by DMSToDecimal and IsDMSFormat. Both must accept exactly the same input.
// Groups: 1 degrees (signed), 2 minutes, 3 seconds, 4 hemisphere.
var dmsPattern = regexp.MustCompile(`(?i)^\s*(-?\d+)\s*(?:°|deg)\s*(\d+)\s*(?:'|min)\s*(\d+(?:\.\d+)?)\s*(?:"|sec)?\s*([NSEW])?\s*$`)

// DecimalToDMS renders a decimal coordinate as `41° 24' 12.20" N`.
// isLatitude selects the N/S hemisphere letters, otherwise E/W.
// Non-finite input yields NotAvailable.
func DecimalToDMS(decimal float64, isLatitude bool) string {
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return NotAvailable
	}

	abs := math.Abs(decimal)
	degrees := math.Floor(abs)
	minutes := math.Floor((abs - degrees) * 60)
	seconds := (abs - degrees - minutes/60) * 3600

	return fmt.Sprintf("%s° %s' %s\" %s",
		strconv.FormatFloat(degrees, 'f', -1, 64),
		strconv.FormatFloat(minutes, 'f', -1, 64),
		toFixed(seconds, 2),
		hemisphere(decimal, isLatitude),
	)
}

func hemisphere(decimal float64, isLatitude bool) string {
	switch {
	case isLatitude && decimal >= 0:
		return "N"
	case isLatitude:
		return "S"
	case decimal >= 0:
		return "E"
	default:
		return "W"
	}
}

// DMSToDecimal parses DMS text into decimal degrees rounded to 6 places.
// ok is false when the input does not have the DMS shape.
//
// The value is the signed sum degrees + minutes/60 + seconds/3600. A S or W
// hemisphere makes that sum negative. Without a hemisphere, negative degrees
// keep the sum negative. An N or E hemisphere leaves the sum as it is, so
// `-6° 48' 44.4" N` yields -5.187667.
func DMSToDecimal(input string) (float64, bool) {
	m := dmsPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}

	degrees, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	dir := strings.ToUpper(m[4])

	decimal := degrees + minutes/60 + seconds/3600

	switch {
	case dir == "S" || dir == "W":
		decimal = -math.Abs(decimal)
	case dir == "" && degrees < 0:
		decimal = -math.Abs(decimal)
	}

	return round6(decimal), true
}

// IsDMSFormat reports whether input would be accepted by DMSToDecimal.
func IsDMSFormat(input string) bool {
	return dmsPattern.MatchString(input)
}

// round6 rounds half towards positive infinity at the sixth decimal.
func round6(v float64) float64 {
	// The explicit conversion keeps the product from being fused into an FMA.
	return math.Floor(float64(v*1e6)+0.5) / 1e6
}

// ParseCoordinate accepts either plain decimal text ("-6.8123") or DMS text.
func ParseCoordinate(input string) (float64, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, false
	}
	if v, ok := ParseDecimal(trimmed); ok {
		return v, true
	}
	return DMSToDecimal(trimmed)
}

// ParseDecimal parses plain decimal text such as "-6.8123". Go-only literal
// forms (hex floats, digit separators, inf, nan) are rejected, matching Coerce.
func ParseDecimal(input string) (float64, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || !plainNumber(trimmed) {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// plainNumber rejects the literal forms strconv accepts beyond ordinary decimal notation.
func plainNumber(s string) bool {
	return !strings.ContainsAny(s, "_xXpPiInN")
}

// ValidLatitude reports whether v lies within [-90, 90].
func ValidLatitude(v float64) bool {
	return v >= minLatitude && v <= maxLatitude
}

// ValidLongitude reports whether v lies within [-180, 180].
func ValidLongitude(v float64) bool {
	return v >= minLongitude && v <= maxLongitude
}

// GeoURI renders an RFC 5870 geo URI, e.g. "geo:-6.812300,39.280100".
func GeoURI(lat, lng float64) string {
	return "geo:" + toFixed(lat, 6) + "," + toFixed(lng, 6)
}
