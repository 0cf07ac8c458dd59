package geo

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// FormatCoordinate renders a coordinate with exactly six decimals.
// nil and nil pointers render NotAvailable. Values are coerced to a number
// first; anything that does not coerce renders "NaN" so bad upstream data stays visible.
func FormatCoordinate(value any) string {
	v, ok := Coerce(value)
	if !ok {
		return NotAvailable
	}
	return toFixed(v, 6)
}

// Coerce converts an upstream coordinate value to a number with the same
// rules as FormatCoordinate. ok is false for nil and nil pointers; values that
// do not coerce give NaN with ok true.
func Coerce(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}

	return coerceNumber(rv), true
}

// FormatDMS renders an upstream coordinate value as DMS text, or NotAvailable
// when the value is missing or not a finite number.
func FormatDMS(value any, isLatitude bool) string {
	v, ok := Coerce(value)
	if !ok {
		return NotAvailable
	}
	return DecimalToDMS(v, isLatitude)
}

func coerceNumber(rv reflect.Value) float64 {
	if n, ok := rv.Interface().(json.Number); ok {
		return coerceString(string(n))
	}

	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		return coerceString(rv.String())
	default:
		return math.NaN()
	}
}

// coerceString follows the usual string-to-number rules of form inputs:
// surrounding whitespace is ignored and blank text is zero.
func coerceString(s string) float64 {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if !plainNumber(trimmed) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// toFixed formats x with a fixed number of decimals. Exact ties on the
// binary value round away from zero, so 0.125 becomes "0.13" where
// strconv would give "0.12".
func toFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if x == 0 {
		x = 0 // drop negative zero
	}
	if math.Abs(x) >= 1e21 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	const prec = 256
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	scaled := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetInt(scale))

	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(scaled, new(big.Float).SetPrec(prec).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		whole.Add(whole, big.NewInt(1))
	}

	text := whole.String()
	if digits > 0 {
		if len(text) <= digits {
			text = strings.Repeat("0", digits-len(text)+1) + text
		}
		text = text[:len(text)-digits] + "." + text[len(text)-digits:]
	}
	if x < 0 {
		text = "-" + text
	}
	return text
}
