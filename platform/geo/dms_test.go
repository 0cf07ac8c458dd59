package geo

import (
	"math"
	"strings"
	"testing"
)

func TestDecimalToDMS_KnownValue(t *testing.T) {
	got := DecimalToDMS(41.40339, true)
	want := `41° 24' 12.20" N`
	if got != want {
		t.Fatalf("DecimalToDMS(41.40339, true) = %q, want %q", got, want)
	}
}

func TestDecimalToDMS_Hemispheres(t *testing.T) {
	tests := []struct {
		decimal    float64
		isLatitude bool
		suffix     string
	}{
		{-6.8123, true, "S"},
		{6.8123, true, "N"},
		{-39.12, false, "W"},
		{39.12, false, "E"},
		{0, true, "N"},
		{0, false, "E"},
	}

	for _, tt := range tests {
		got := DecimalToDMS(tt.decimal, tt.isLatitude)
		if !strings.HasSuffix(got, " "+tt.suffix) {
			t.Errorf("DecimalToDMS(%v, %v) = %q, want suffix %q", tt.decimal, tt.isLatitude, got, tt.suffix)
		}
	}
}

func TestDecimalToDMS_Format(t *testing.T) {
	tests := []struct {
		decimal    float64
		isLatitude bool
		want       string
	}{
		{-6.8123, true, `6° 48' 44.28" S`},
		{39.2801, false, `39° 16' 48.36" E`},
		{0.5, false, `0° 30' 0.00" E`},
		{-180, false, `180° 0' 0.00" W`},
		{1.0001, true, `1° 0' 0.36" N`},
	}

	for _, tt := range tests {
		if got := DecimalToDMS(tt.decimal, tt.isLatitude); got != tt.want {
			t.Errorf("DecimalToDMS(%v, %v) = %q, want %q", tt.decimal, tt.isLatitude, got, tt.want)
		}
	}
}

func TestDecimalToDMS_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := DecimalToDMS(v, true); got != NotAvailable {
			t.Errorf("DecimalToDMS(%v) = %q, want %q", v, got, NotAvailable)
		}
	}
}

func TestDMSToDecimal_KnownValue(t *testing.T) {
	got, ok := DMSToDecimal(`41° 24' 12.20" N`)
	if !ok {
		t.Fatal("expected DMS text to parse")
	}
	if math.Abs(got-41.403389) > 1e-9 {
		t.Fatalf("expected 41.403389, got %v", got)
	}
}

func TestDMSToDecimal_SignPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"south hemisphere", `6° 48' 44.4" S`, -6.812333},
		{"south negates the signed sum", `-6° 48' 44.4" S`, -5.187667},
		{"negative degrees without hemisphere", `-6° 48' 44.4"`, -5.187667},
		{"north hemisphere", `6° 48' 44.4" N`, 6.812333},
		{"west overrides unsigned degrees", `39° 7' 12" W`, -39.12},
		{"west negates the signed sum", `-39° 7' 12" W`, -38.88},
		// Minus zero is not below zero, so the minutes stay positive.
		{"minus zero degrees without hemisphere", `-0° 30' 0"`, 0.5},
		// North does not force a positive value.
		{"north keeps signed sum", `-6° 48' 44.4" N`, -5.187667},
		{"east keeps signed sum", `-1° 30' 0" E`, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DMSToDecimal(tt.input)
			if !ok {
				t.Fatalf("expected %q to parse", tt.input)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("DMSToDecimal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDMSToDecimal_AcceptedShapes(t *testing.T) {
	inputs := []string{
		`6° 48' 44.4" S`,
		`6°48'44.4"S`,
		`  6 deg 48 min 44.4 sec s  `,
		`6 DEG 48 MIN 44 SEC`,
		`6° 48' 44`,
		`6° 48' 44.40 w`,
		`-6°48'44.4"`,
	}

	for _, input := range inputs {
		if _, ok := DMSToDecimal(input); !ok {
			t.Errorf("expected %q to parse", input)
		}
	}
}

func TestDMSToDecimal_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"not a coordinate",
		"-6.8123",
		"6 48 44",
		`6° 48'`,
		`6° 48' 44.4" X`,
		`6° 48' 44.4" NS`,
		`6.5° 48' 44.4"`,
		`6° -48' 44.4"`,
		`6° 48' .4"`,
		`6° 48' 44." N`,
		`+6° 48' 44.4"`,
	}

	for _, input := range inputs {
		if got, ok := DMSToDecimal(input); ok {
			t.Errorf("expected %q to be rejected, got %v", input, got)
		}
	}
}

func TestDMSToDecimal_RoundsToSixPlaces(t *testing.T) {
	got, ok := DMSToDecimal(`0° 0' 1" N`)
	if !ok {
		t.Fatal("expected DMS text to parse")
	}
	// 1/3600 = 0.000277777...
	if got != 0.000278 {
		t.Fatalf("expected 0.000278, got %v", got)
	}
}

func TestIsDMSFormat_MatchesParser(t *testing.T) {
	corpus := []string{
		`41° 24' 12.20" N`,
		`6° 48' 44.4" S`,
		`-6° 48' 44.4"`,
		`6 deg 48 min 44.4 sec`,
		`39° 7' 12" w`,
		"",
		" ",
		"not a coordinate",
		"41.40339",
		"-6",
		"12345",
		`41° 24'`,
		`41° 24' 12.20" Q`,
		"°'\"",
		"N",
		`1° 2' 3" E extra`,
	}

	for _, s := range corpus {
		_, ok := DMSToDecimal(s)
		if IsDMSFormat(s) != ok {
			t.Errorf("IsDMSFormat(%q) = %v but DMSToDecimal ok = %v", s, IsDMSFormat(s), ok)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, isLatitude := range []bool{true, false} {
		for d := -179.99; d < 180; d += 0.7317 {
			text := DecimalToDMS(d, isLatitude)
			back, ok := DMSToDecimal(text)
			if !ok {
				t.Fatalf("DMSToDecimal(%q) failed for %v", text, d)
			}
			if math.Abs(back-d) > 0.00001 {
				t.Fatalf("round trip of %v via %q gave %v", d, text, back)
			}
		}
	}
}

func TestRoundTrip_SecondsCarry(t *testing.T) {
	// 41.4 lands just below 24 minutes in binary and renders as 60.00 seconds.
	text := DecimalToDMS(41.4, true)
	back, ok := DMSToDecimal(text)
	if !ok {
		t.Fatalf("DMSToDecimal(%q) failed", text)
	}
	if math.Abs(back-41.4) > 0.00001 {
		t.Fatalf("round trip of 41.4 via %q gave %v", text, back)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"-6.8123", -6.8123, true},
		{" 39.2801 ", 39.2801, true},
		{`6° 48' 44.4" S`, -6.812333, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"north", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCoordinate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseCoordinate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRanges(t *testing.T) {
	if !ValidLatitude(-90) || !ValidLatitude(90) || ValidLatitude(90.000001) {
		t.Fatal("latitude bounds are inclusive [-90, 90]")
	}
	if !ValidLongitude(-180) || !ValidLongitude(180) || ValidLongitude(-180.5) {
		t.Fatal("longitude bounds are inclusive [-180, 180]")
	}
	if ValidLatitude(math.NaN()) || ValidLongitude(math.NaN()) {
		t.Fatal("NaN is never a valid coordinate")
	}
}

func TestGeoURI(t *testing.T) {
	if got := GeoURI(-6.8123, 39.2801); got != "geo:-6.812300,39.280100" {
		t.Fatalf("unexpected geo URI %q", got)
	}
}

func TestParseCoordinate_RejectsNonDecimalLiterals(t *testing.T) {
	for _, input := range []string{"0x1p3", "0X10", "1_000", "Inf", "-inf", "NaN", "infinity"} {
		if v, ok := ParseCoordinate(input); ok {
			t.Fatalf("expected %q to be rejected, got %v", input, v)
		}
		if v, ok := ParseDecimal(input); ok {
			t.Fatalf("expected ParseDecimal(%q) to be rejected, got %v", input, v)
		}
	}

	for input, want := range map[string]float64{"-6.8123": -6.8123, " 39 ": 39, "1e-3": 0.001} {
		got, ok := ParseDecimal(input)
		if !ok || got != want {
			t.Fatalf("ParseDecimal(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
}
