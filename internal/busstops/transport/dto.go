package transport

// Coordinates

type ToDMSRequest struct {
	Value *float64 `json:"value" validate:"required"`
	Axis  string   `json:"axis" validate:"required,oneof=latitude longitude"`
}

type ToDMSResponse struct {
	Decimal   float64 `json:"decimal"`
	Formatted string  `json:"formatted"`
	DMS       string  `json:"dms"`
}

type ToDecimalRequest struct {
	DMS string `json:"dms" validate:"required,max=64,dms"`
}

type ToDecimalResponse struct {
	Decimal   float64 `json:"decimal"`
	Formatted string  `json:"formatted"`
}

type ValidateCoordinateRequest struct {
	Value string `form:"value" validate:"max=64"`
	Axis  string `form:"axis" validate:"omitempty,oneof=latitude longitude"`
}

type ValidateCoordinateResponse struct {
	Valid   bool     `json:"valid"`
	IsDMS   bool     `json:"isDms"`
	InRange bool     `json:"inRange"`
	Decimal *float64 `json:"decimal,omitempty"`
}

// Bus stops

type BusStopRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Code        string  `json:"code" validate:"required,max=20"`
	Latitude    string  `json:"latitude" validate:"required,max=64,coordinate"`
	Longitude   string  `json:"longitude" validate:"required,max=64,coordinate"`
	Mode        string  `json:"mode" validate:"omitempty,oneof=decimal dms"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type BusStopDraft struct {
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Description        *string `json:"description,omitempty"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	LatitudeFormatted  string  `json:"latitudeFormatted"`
	LongitudeFormatted string  `json:"longitudeFormatted"`
	LatitudeDMS        string  `json:"latitudeDms"`
	LongitudeDMS       string  `json:"longitudeDms"`
	GeoURI             string  `json:"geoUri"`
}

// DescribeRequest carries coordinates as an upstream API returned them:
// numbers, numeric strings or null.
type DescribeRequest struct {
	Name      string `json:"name" validate:"max=120"`
	Code      string `json:"code" validate:"max=20"`
	Latitude  any    `json:"latitude"`
	Longitude any    `json:"longitude"`
}

type BusStopDetails struct {
	Name               string `json:"name"`
	Code               string `json:"code"`
	LatitudeFormatted  string `json:"latitudeFormatted"`
	LongitudeFormatted string `json:"longitudeFormatted"`
	LatitudeDMS        string `json:"latitudeDms"`
	LongitudeDMS       string `json:"longitudeDms"`
}

// Location form

type LocationFormState struct {
	Latitude  *float64          `json:"latitude"`
	Longitude *float64          `json:"longitude"`
	Mode      string            `json:"mode" validate:"omitempty,oneof=decimal dms"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type LocationFormRequest struct {
	Form   LocationFormState `json:"form"`
	Action string            `json:"action" validate:"required,oneof=setLatitude setLongitude toggleMode"`
	Value  string            `json:"value" validate:"max=64"`
}

type LocationFormView struct {
	LatitudeText  string `json:"latitudeText"`
	LongitudeText string `json:"longitudeText"`
	LatitudeDMS   string `json:"latitudeDms"`
	LongitudeDMS  string `json:"longitudeDms"`
}

type LocationFormResponse struct {
	Form LocationFormState `json:"form"`
	View LocationFormView  `json:"view"`
}

// QR codes

type QRRequest struct {
	Latitude  *float64 `form:"lat" validate:"required,geolat"`
	Longitude *float64 `form:"lng" validate:"required,geolng"`
	Size      int      `form:"size" validate:"omitempty,min=64,max=1024"`
}
