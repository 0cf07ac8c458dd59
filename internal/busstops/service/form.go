package service

import (
	"strconv"
	"strings"

	"transit_console_backend/internal/busstops/transport"
	"transit_console_backend/platform/geo"
)

// Mode selects how coordinate text is entered and displayed on the location form.
type Mode string

const (
	ModeDecimal Mode = "decimal"
	ModeDMS     Mode = "dms"
)

const (
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
)

const (
	msgDecimalExpected = "must be a decimal number such as -6.8123"
	msgDMSExpected     = `must look like 6° 48' 44.40" S`
	msgLatitudeRange   = "must be a latitude between -90 and 90"
	msgLongitudeRange  = "must be a longitude between -180 and 180"
)

// LocationForm is the state behind a bus stop location editor. The decimal
// values are the only stored coordinates; DMS text is always derived from them.
type LocationForm struct {
	Latitude  *float64
	Longitude *float64
	Mode      Mode
	Errors    map[string]string
}

// NewLocationForm returns an empty form in decimal mode.
func NewLocationForm() *LocationForm {
	return &LocationForm{Mode: ModeDecimal, Errors: map[string]string{}}
}

// FormFromState restores a form from its wire representation.
func FormFromState(state transport.LocationFormState) *LocationForm {
	form := NewLocationForm()
	form.Latitude = state.Latitude
	form.Longitude = state.Longitude
	if Mode(state.Mode) == ModeDMS {
		form.Mode = ModeDMS
	}
	for field, msg := range state.Errors {
		form.Errors[field] = msg
	}
	return form
}

// State returns the wire representation of the form.
func (f *LocationForm) State() transport.LocationFormState {
	state := transport.LocationFormState{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Mode:      string(f.Mode),
	}
	if len(f.Errors) > 0 {
		state.Errors = make(map[string]string, len(f.Errors))
		for field, msg := range f.Errors {
			state.Errors[field] = msg
		}
	}
	return state
}

// SetLatitudeText applies text typed into the latitude field.
func (f *LocationForm) SetLatitudeText(text string) {
	f.setText(fieldLatitude, text, &f.Latitude)
}

// SetLongitudeText applies text typed into the longitude field.
func (f *LocationForm) SetLongitudeText(text string) {
	f.setText(fieldLongitude, text, &f.Longitude)
}

// setText parses text in the current mode. Blank text clears the value.
// Text that does not parse, or falls out of range, records an error and
// keeps the previous value.
func (f *LocationForm) setText(field, text string, target **float64) {
	if strings.TrimSpace(text) == "" {
		*target = nil
		delete(f.Errors, field)
		return
	}

	value, msg := parseFieldText(f.Mode, field, text)
	if msg != "" {
		f.Errors[field] = msg
		return
	}

	*target = &value
	delete(f.Errors, field)
}

func parseFieldText(mode Mode, field, text string) (float64, string) {
	var (
		value float64
		ok    bool
	)
	switch mode {
	case ModeDMS:
		value, ok = geo.DMSToDecimal(text)
		if !ok {
			return 0, msgDMSExpected
		}
	default:
		value, ok = geo.ParseDecimal(text)
		if !ok {
			return 0, msgDecimalExpected
		}
	}

	if field == fieldLatitude && !geo.ValidLatitude(value) {
		return 0, msgLatitudeRange
	}
	if field == fieldLongitude && !geo.ValidLongitude(value) {
		return 0, msgLongitudeRange
	}
	return value, ""
}

// Toggle switches between decimal and DMS entry. Stored values are unchanged.
func (f *LocationForm) Toggle() {
	if f.Mode == ModeDMS {
		f.Mode = ModeDecimal
	} else {
		f.Mode = ModeDMS
	}
	// Pending errors were phrased for the previous mode.
	f.Errors = map[string]string{}
}

// View renders the field text for the current mode plus the DMS preview.
func (f *LocationForm) View() transport.LocationFormView {
	return transport.LocationFormView{
		LatitudeText:  f.fieldText(f.Latitude, true),
		LongitudeText: f.fieldText(f.Longitude, false),
		LatitudeDMS:   geo.FormatDMS(f.Latitude, true),
		LongitudeDMS:  geo.FormatDMS(f.Longitude, false),
	}
}

func (f *LocationForm) fieldText(value *float64, isLatitude bool) string {
	if value == nil {
		return ""
	}
	if f.Mode == ModeDMS {
		return geo.DecimalToDMS(*value, isLatitude)
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
