package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Table is the data behind a tabular PDF report.
type Table struct {
	Title       string
	Subtitle    string
	Columns     []string
	Rows        [][]string
	GeneratedAt time.Time
}

type tableView struct {
	Title       string
	Subtitle    string
	Columns     []string
	Rows        [][]string
	GeneratedAt string
}

// RenderTableHTML renders the table page and its footer. All cell text is HTML-escaped.
func RenderTableHTML(t Table) (index []byte, footer []byte, err error) {
	generatedAt := t.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	view := tableView{
		Title:       t.Title,
		Subtitle:    t.Subtitle,
		Columns:     t.Columns,
		Rows:        t.Rows,
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04 MST"),
	}

	index, err = execute("table", view)
	if err != nil {
		return nil, nil, err
	}
	footer, err = execute("footer", view)
	if err != nil {
		return nil, nil, err
	}
	return index, footer, nil
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute pdf template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
