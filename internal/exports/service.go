package exports

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"transit_console_backend/internal/pdf"
	"transit_console_backend/platform/apperr"
	"transit_console_backend/platform/geo"
	"transit_console_backend/platform/logger"
	"transit_console_backend/platform/sanitize"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"

	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypePDF = "application/pdf"

	defaultBusStopTitle = "Bus stops"
	fileDateLayout      = "20060102"

	// Wide tables are printed landscape.
	landscapeColumns = 6
)

var busStopColumns = []string{"Name", "Code", "Latitude", "Longitude", "Description"}

// TableConverter turns a table into PDF bytes. Implemented by *pdf.GotenbergClient.
type TableConverter interface {
	ConvertTable(ctx context.Context, t pdf.Table, opts pdf.ConvertOpts) ([]byte, error)
}

// Service renders table exports. A nil converter disables PDF output.
type Service struct {
	converter TableConverter
	maxRows   int
	log       *logger.Logger
	now       func() time.Time
}

func NewService(converter TableConverter, maxRows int, log *logger.Logger) *Service {
	return &Service{
		converter: converter,
		maxRows:   maxRows,
		log:       log,
		now:       time.Now,
	}
}

// ExportBusStops renders the bus stop table with coordinates as decimal or DMS text.
func (s *Service) ExportBusStops(ctx context.Context, format string, req BusStopExportRequest) (File, error) {
	if err := s.checkRows(len(req.Stops)); err != nil {
		return File{}, err
	}

	title := sanitize.Text(req.Title)
	if title == "" {
		title = defaultBusStopTitle
	}

	dms := req.CoordinateFormat == "dms"
	rows := make([][]string, len(req.Stops))
	for i, stop := range req.Stops {
		rows[i] = []string{
			sanitize.Text(stop.Name),
			sanitize.Text(stop.Code),
			renderCoordinate(stop.Latitude, true, dms),
			renderCoordinate(stop.Longitude, false, dms),
			sanitize.Text(stop.Description),
		}
	}

	return s.render(ctx, format, pdf.Table{Title: title, Columns: busStopColumns, Rows: rows})
}

func renderCoordinate(value any, isLatitude, dms bool) string {
	if dms {
		return geo.FormatDMS(value, isLatitude)
	}
	return geo.FormatCoordinate(value)
}

// ExportTable renders an arbitrary table. Every row must have one cell per column.
func (s *Service) ExportTable(ctx context.Context, format string, req TableExportRequest) (File, error) {
	if err := s.checkRows(len(req.Rows)); err != nil {
		return File{}, err
	}

	fields := map[string]string{}
	rows := make([][]string, len(req.Rows))
	for i, row := range req.Rows {
		if len(row) != len(req.Columns) {
			fields[fmt.Sprintf("rows[%d]", i)] = fmt.Sprintf("has %d cells, expected %d", len(row), len(req.Columns))
			continue
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellText(cell)
		}
		rows[i] = cells
	}
	if len(fields) > 0 {
		return File{}, apperr.Validation("validation failed").WithDetails(fields)
	}

	columns := make([]string, len(req.Columns))
	for i, col := range req.Columns {
		columns[i] = sanitize.Text(col)
	}

	return s.render(ctx, format, pdf.Table{Title: sanitize.Text(req.Title), Columns: columns, Rows: rows})
}

// cellText renders a JSON cell value. Numbers keep their shortest form.
func cellText(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case json.Number:
		return value.String()
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(raw)
	}
}

func (s *Service) checkRows(n int) error {
	if s.maxRows > 0 && n > s.maxRows {
		return apperr.TooLarge(fmt.Sprintf("export is limited to %d rows", s.maxRows)).
			WithDetails(map[string]int{"rows": n, "maxRows": s.maxRows})
	}
	return nil
}

func (s *Service) render(ctx context.Context, format string, table pdf.Table) (File, error) {
	table.GeneratedAt = s.now()
	base := slug(table.Title) + "-" + table.GeneratedAt.Format(fileDateLayout)

	var (
		file File
		err  error
	)
	switch format {
	case "", FormatCSV:
		format = FormatCSV
		file, err = encodeCSV(table)
		file.Filename = base + ".csv"
	case FormatPDF:
		file, err = s.encodePDF(ctx, table)
		file.Filename = base + ".pdf"
	default:
		return File{}, apperr.BadRequest("unsupported export format")
	}
	if err != nil {
		return File{}, err
	}

	file.Rows = len(table.Rows)
	s.log.WithContext(ctx).ExportGenerated(table.Title, format, file.Rows, len(file.Data))
	return file, nil
}

func encodeCSV(table pdf.Table) (File, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return File{}, apperr.Wrap(apperr.KindInternal, "failed to write csv", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return File{}, apperr.Wrap(apperr.KindInternal, "failed to write csv", err)
	}

	return File{ContentType: contentTypeCSV, Data: buf.Bytes()}, nil
}

func (s *Service) encodePDF(ctx context.Context, table pdf.Table) (File, error) {
	if s.converter == nil {
		return File{}, apperr.Unavailable("pdf export is not configured")
	}

	opts := pdf.DefaultTableOpts()
	opts.Landscape = len(table.Columns) >= landscapeColumns

	data, err := s.converter.ConvertTable(ctx, table, opts)
	if err != nil {
		s.log.UpstreamError("gotenberg", "convert_table", err)
		return File{}, apperr.Upstream("pdf rendering failed", err).WithOp("exports.encodePDF")
	}
	return File{ContentType: contentTypePDF, Data: data}, nil
}

// slug turns a title into a file name stem: "Vituo vya Mabasi (Ilala)" becomes "vituo-vya-mabasi-ilala".
func slug(title string) string {
	// A transform.Chain keeps buffers between calls, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripMarks, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "export"
	}
	return out
}

// checksum is sent as the ETag of a download.
func checksum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
