// Package service implements the bus stop location business logic.
package service

import (
	"strconv"
	"strings"

	"transit_console_backend/internal/busstops/transport"
	"transit_console_backend/platform/apperr"
	"transit_console_backend/platform/geo"
	"transit_console_backend/platform/sanitize"

	"github.com/skip2/go-qrcode"
)

const (
	axisLatitude  = "latitude"
	axisLongitude = "longitude"

	defaultQRSize = 256

	msgValidationFailed = "validation failed"
)

// Service converts and validates bus stop coordinates. It holds no state.
type Service struct{}

// New creates a new bus stop service.
func New() *Service {
	return &Service{}
}

// ToDMS renders a decimal coordinate as DMS text.
func (s *Service) ToDMS(req transport.ToDMSRequest) transport.ToDMSResponse {
	value := *req.Value
	return transport.ToDMSResponse{
		Decimal:   value,
		Formatted: geo.FormatCoordinate(value),
		DMS:       geo.DecimalToDMS(value, req.Axis == axisLatitude),
	}
}

// ToDecimal parses DMS text into decimal degrees.
func (s *Service) ToDecimal(req transport.ToDecimalRequest) (transport.ToDecimalResponse, error) {
	value, ok := geo.DMSToDecimal(req.DMS)
	if !ok {
		return transport.ToDecimalResponse{}, apperr.Validation(msgValidationFailed).
			WithDetails(map[string]string{"dms": msgDMSExpected})
	}
	return transport.ToDecimalResponse{
		Decimal:   value,
		Formatted: geo.FormatCoordinate(value),
	}, nil
}

// ValidateCoordinate reports whether text is a usable coordinate.
// With an axis, the range for that axis is checked as well.
func (s *Service) ValidateCoordinate(req transport.ValidateCoordinateRequest) transport.ValidateCoordinateResponse {
	value, ok := geo.ParseCoordinate(req.Value)
	if !ok {
		return transport.ValidateCoordinateResponse{}
	}

	inRange := true
	switch req.Axis {
	case axisLatitude:
		inRange = geo.ValidLatitude(value)
	case axisLongitude:
		inRange = geo.ValidLongitude(value)
	}

	return transport.ValidateCoordinateResponse{
		Valid:   inRange,
		IsDMS:   geo.IsDMSFormat(req.Value),
		InRange: inRange,
		Decimal: &value,
	}
}

// PrepareBusStop validates a create/edit payload and returns the normalised draft.
// Coordinate text is read in the given mode; without a mode either notation is accepted.
func (s *Service) PrepareBusStop(req transport.BusStopRequest) (transport.BusStopDraft, error) {
	fields := map[string]string{}

	name := sanitize.Text(req.Name)
	if name == "" {
		fields["name"] = "is required"
	}
	code := strings.ToUpper(sanitize.Text(req.Code))
	if code == "" {
		fields["code"] = "is required"
	}

	lat, latMsg := parseCoordinateField(Mode(req.Mode), fieldLatitude, req.Latitude)
	if latMsg != "" {
		fields[fieldLatitude] = latMsg
	}
	lng, lngMsg := parseCoordinateField(Mode(req.Mode), fieldLongitude, req.Longitude)
	if lngMsg != "" {
		fields[fieldLongitude] = lngMsg
	}

	if len(fields) > 0 {
		return transport.BusStopDraft{}, apperr.Validation(msgValidationFailed).WithDetails(fields)
	}

	return transport.BusStopDraft{
		Name:               name,
		Code:               code,
		Description:        sanitize.TextPtr(req.Description),
		Latitude:           lat,
		Longitude:          lng,
		LatitudeFormatted:  geo.FormatCoordinate(lat),
		LongitudeFormatted: geo.FormatCoordinate(lng),
		LatitudeDMS:        geo.DecimalToDMS(lat, true),
		LongitudeDMS:       geo.DecimalToDMS(lng, false),
		GeoURI:             geo.GeoURI(lat, lng),
	}, nil
}

func parseCoordinateField(mode Mode, field, text string) (float64, string) {
	if mode != "" {
		return parseFieldText(mode, field, text)
	}

	value, ok := geo.ParseCoordinate(text)
	if !ok {
		return 0, "must be decimal degrees or DMS text"
	}
	if field == fieldLatitude && !geo.ValidLatitude(value) {
		return 0, msgLatitudeRange
	}
	if field == fieldLongitude && !geo.ValidLongitude(value) {
		return 0, msgLongitudeRange
	}
	return value, ""
}

// Describe renders API-sourced coordinates for a detail view. Missing values show N/A.
func (s *Service) Describe(req transport.DescribeRequest) transport.BusStopDetails {
	return transport.BusStopDetails{
		Name:               sanitize.Text(req.Name),
		Code:               sanitize.Text(req.Code),
		LatitudeFormatted:  geo.FormatCoordinate(req.Latitude),
		LongitudeFormatted: geo.FormatCoordinate(req.Longitude),
		LatitudeDMS:        geo.FormatDMS(req.Latitude, true),
		LongitudeDMS:       geo.FormatDMS(req.Longitude, false),
	}
}

// ApplyFormAction applies one edit to a location form state.
func (s *Service) ApplyFormAction(req transport.LocationFormRequest) transport.LocationFormResponse {
	form := FormFromState(req.Form)

	switch req.Action {
	case "setLatitude":
		form.SetLatitudeText(req.Value)
	case "setLongitude":
		form.SetLongitudeText(req.Value)
	case "toggleMode":
		form.Toggle()
	}

	return transport.LocationFormResponse{Form: form.State(), View: form.View()}
}

// QRCode renders a PNG QR code of the stop's geo URI.
func (s *Service) QRCode(req transport.QRRequest) ([]byte, string, error) {
	size := req.Size
	if size == 0 {
		size = defaultQRSize
	}

	uri := geo.GeoURI(*req.Latitude, *req.Longitude)
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to render qr code", err).WithOp("busstops.QRCode")
	}
	return png, qrFilename(*req.Latitude, *req.Longitude), nil
}

func qrFilename(lat, lng float64) string {
	return "stop_" + strconv.FormatFloat(lat, 'f', 5, 64) + "_" + strconv.FormatFloat(lng, 'f', 5, 64) + ".png"
}
