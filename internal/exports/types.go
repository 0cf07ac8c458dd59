package exports

// ExportQuery selects the output format.
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}

// BusStopRow is one stop as the stops API returned it. Coordinates may be
// numbers, numeric strings or null.
type BusStopRow struct {
	Name        string `json:"name" validate:"max=200"`
	Code        string `json:"code" validate:"max=50"`
	Latitude    any    `json:"latitude"`
	Longitude   any    `json:"longitude"`
	Description string `json:"description" validate:"max=500"`
}

type BusStopExportRequest struct {
	Title            string       `json:"title" validate:"max=120"`
	CoordinateFormat string       `json:"coordinateFormat" validate:"omitempty,oneof=decimal dms"`
	Stops            []BusStopRow `json:"stops" validate:"dive"`
}

// TableExportRequest is an arbitrary table shown in the console.
type TableExportRequest struct {
	Title   string   `json:"title" validate:"required,max=120"`
	Columns []string `json:"columns" validate:"required,min=1,max=50,dive,required,max=100"`
	Rows    [][]any  `json:"rows"`
}

// File is a rendered export ready to be downloaded.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}
