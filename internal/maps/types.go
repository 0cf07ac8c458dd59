package maps

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" validate:"required,min=3,max=200"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=10"`
}

// AddressSuggestion is the normalized data returned to the bus stop form.
type AddressSuggestion struct {
	Label       string  `json:"label"`
	Street      string  `json:"street,omitempty"`
	HouseNumber string  `json:"houseNumber,omitempty"`
	ZipCode     string  `json:"zipCode,omitempty"`
	City        string  `json:"city,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	LatDMS      string  `json:"latDms"`
	LonDMS      string  `json:"lonDms"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Suburb       string `json:"suburb"`
	Hamlet       string `json:"hamlet"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
