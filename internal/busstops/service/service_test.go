package service

import (
	"bytes"
	"errors"
	"testing"

	"transit_console_backend/internal/busstops/transport"
	"transit_console_backend/platform/apperr"
)

func TestToDMS(t *testing.T) {
	svc := New()
	value := 41.40339

	got := svc.ToDMS(transport.ToDMSRequest{Value: &value, Axis: "latitude"})
	if got.DMS != `41° 24' 12.20" N` || got.Formatted != "41.403390" {
		t.Fatalf("unexpected result %+v", got)
	}

	got = svc.ToDMS(transport.ToDMSRequest{Value: &value, Axis: "longitude"})
	if got.DMS != `41° 24' 12.20" E` {
		t.Fatalf("expected longitude hemisphere, got %q", got.DMS)
	}
}

func TestToDecimal(t *testing.T) {
	svc := New()

	got, err := svc.ToDecimal(transport.ToDecimalRequest{DMS: `41° 24' 12.2" N`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Decimal != 41.403389 || got.Formatted != "41.403389" {
		t.Fatalf("unexpected result %+v", got)
	}

	_, err = svc.ToDecimal(transport.ToDecimalRequest{DMS: "41.40339"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateCoordinate(t *testing.T) {
	svc := New()

	tests := []struct {
		name    string
		req     transport.ValidateCoordinateRequest
		valid   bool
		isDMS   bool
		decimal bool
	}{
		{"decimal", transport.ValidateCoordinateRequest{Value: "-6.8123"}, true, false, true},
		{"dms", transport.ValidateCoordinateRequest{Value: `6° 48' 44.4" S`, Axis: "latitude"}, true, true, true},
		{"out of range", transport.ValidateCoordinateRequest{Value: "120", Axis: "latitude"}, false, false, true},
		{"garbage", transport.ValidateCoordinateRequest{Value: "north"}, false, false, false},
		{"empty", transport.ValidateCoordinateRequest{}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ValidateCoordinate(tt.req)
			if got.Valid != tt.valid || got.IsDMS != tt.isDMS || (got.Decimal != nil) != tt.decimal {
				t.Fatalf("unexpected result %+v", got)
			}
		})
	}
}

func TestPrepareBusStop(t *testing.T) {
	svc := New()
	desc := "  opposite the <b>market</b> "

	draft, err := svc.PrepareBusStop(transport.BusStopRequest{
		Name:        " Kariakoo   Market ",
		Code:        "dsm-014",
		Latitude:    `6° 48' 44.4" S`,
		Longitude:   "39.2801",
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Name != "Kariakoo Market" || draft.Code != "DSM-014" {
		t.Fatalf("expected sanitised name and code, got %q %q", draft.Name, draft.Code)
	}
	if draft.Description == nil || *draft.Description != "opposite the market" {
		t.Fatalf("unexpected description %v", draft.Description)
	}
	if draft.Latitude != -6.812333 || draft.LatitudeFormatted != "-6.812333" {
		t.Fatalf("unexpected latitude %v %q", draft.Latitude, draft.LatitudeFormatted)
	}
	if draft.LatitudeDMS != `6° 48' 44.40" S` || draft.LongitudeDMS != `39° 16' 48.36" E` {
		t.Fatalf("unexpected DMS %q %q", draft.LatitudeDMS, draft.LongitudeDMS)
	}
	if draft.GeoURI != "geo:-6.812333,39.280100" {
		t.Fatalf("unexpected geo uri %q", draft.GeoURI)
	}
}

func TestPrepareBusStop_FieldErrors(t *testing.T) {
	svc := New()

	_, err := svc.PrepareBusStop(transport.BusStopRequest{
		Name:      "<i></i>",
		Code:      "X1",
		Latitude:  "-95",
		Longitude: "39.2801",
		Mode:      "dms",
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := appErr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", appErr.Details)
	}
	if fields["name"] != "is required" {
		t.Fatalf("expected name error, got %v", fields)
	}
	if fields["latitude"] != msgDMSExpected || fields["longitude"] != msgDMSExpected {
		t.Fatalf("expected dms mode errors, got %v", fields)
	}
}

func TestDescribe(t *testing.T) {
	svc := New()

	got := svc.Describe(transport.DescribeRequest{
		Name:      "Posta",
		Latitude:  -6.8123,
		Longitude: nil,
	})

	if got.LatitudeFormatted != "-6.812300" || got.LatitudeDMS != `6° 48' 44.28" S` {
		t.Fatalf("unexpected latitude rendering %+v", got)
	}
	if got.LongitudeFormatted != "N/A" || got.LongitudeDMS != "N/A" {
		t.Fatalf("expected N/A for missing longitude, got %+v", got)
	}
}

func TestApplyFormAction(t *testing.T) {
	svc := New()

	resp := svc.ApplyFormAction(transport.LocationFormRequest{
		Form:   transport.LocationFormState{Mode: "decimal"},
		Action: "setLatitude",
		Value:  "-6.8123",
	})
	if resp.Form.Latitude == nil || resp.View.LatitudeDMS != `6° 48' 44.28" S` {
		t.Fatalf("unexpected response %+v", resp)
	}

	resp = svc.ApplyFormAction(transport.LocationFormRequest{Form: resp.Form, Action: "toggleMode"})
	if resp.Form.Mode != "dms" || resp.View.LatitudeText != `6° 48' 44.28" S` {
		t.Fatalf("unexpected toggled response %+v", resp)
	}
}

func TestQRCode(t *testing.T) {
	svc := New()
	lat, lng := -6.8123, 39.2801

	png, filename, err := svc.QRCode(transport.QRRequest{Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
	if filename != "stop_-6.81230_39.28010.png" {
		t.Fatalf("unexpected filename %q", filename)
	}
}
