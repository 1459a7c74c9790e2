package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/extract"
)

// Supported input formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Table is an ordered category column paired with a measure column.
type Table struct {
	Categories []extract.Category
	Measures   []float64
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Categories) }

// Options selects the format and the CSV columns.
type Options struct {
	// Format overrides detection from the file extension.
	Format string
	// CategoryColumn and MeasureColumn name CSV header columns. Empty means
	// the first and second column respectively.
	CategoryColumn string
	MeasureColumn  string
}

type document struct {
	Rows []row `json:"rows" yaml:"rows"`
}

type row struct {
	Category any      `json:"category" yaml:"category"`
	Measure  *float64 `json:"measure" yaml:"measure"`
}

func (d document) table() Table {
	t := Table{
		Categories: make([]extract.Category, len(d.Rows)),
		Measures:   make([]float64, len(d.Rows)),
	}
	for i, r := range d.Rows {
		t.Categories[i] = extract.CategoryOf(r.Category)
		if r.Measure == nil {
			t.Measures[i] = math.NaN()
		} else {
			t.Measures[i] = *r.Measure
		}
	}
	return t
}

// ReadJSON decodes a {"rows": [...]} document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Table, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	for i := range doc.Rows {
		if n, ok := doc.Rows[i].Category.(json.Number); ok {
			doc.Rows[i].Category = numberCategory(n)
		}
	}
	return doc.table(), nil
}

// numberCategory keeps integers exact and formats everything else through
// float64, matching how numeric categories are labelled elsewhere.
func numberCategory(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// ReadYAML decodes a rows document from r.
func ReadYAML(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}
	return doc.table(), nil
}

// ReadCSV reads a headed CSV table from r. Measures must parse as numbers;
// an empty measure cell is read as NaN.
func ReadCSV(r io.Reader, opts Options) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode CSV")
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	header := records[0]
	catCol, err := column(header, opts.CategoryColumn, 0)
	if err != nil {
		return Table{}, err
	}
	measCol, err := column(header, opts.MeasureColumn, 1)
	if err != nil {
		return Table{}, err
	}

	t := Table{
		Categories: make([]extract.Category, 0, len(records)-1),
		Measures:   make([]float64, 0, len(records)-1),
	}
	for i, rec := range records[1:] {
		line := i + 2
		if catCol >= len(rec) || measCol >= len(rec) {
			return Table{}, errors.New(errors.ErrCodeShapeMismatch, "line %d: %d fields, need %d", line, len(rec), max(catCol, measCol)+1)
		}
		m, err := parseMeasure(rec[measCol])
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidMeasure, err, "line %d: measure %q", line, rec[measCol])
		}
		t.Categories = append(t.Categories, extract.Category(rec[catCol]))
		t.Measures = append(t.Measures, m)
	}
	return t, nil
}

func column(header []string, name string, fallback int) (int, error) {
	if name == "" {
		if fallback >= len(header) {
			return 0, errors.New(errors.ErrCodeInvalidInput, "CSV needs at least %d columns, header has %d", fallback+1, len(header))
		}
		return fallback, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "CSV has no column %q (have %s)", name, strings.Join(header, ", "))
}

func parseMeasure(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Read decodes r in the given format.
func Read(r io.Reader, opts Options) (Table, error) {
	switch strings.ToLower(opts.Format) {
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML, "yml":
		return ReadYAML(r)
	default:
		return Table{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (want csv, json or yaml)", opts.Format)
	}
}

// Import reads the file at path. "-" reads standard input, which requires
// opts.Format.
func Import(path string, opts Options) (Table, error) {
	if opts.Format == "" {
		opts.Format = DetectFormat(path)
	}
	if path == "-" {
		return Read(os.Stdin, opts)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DetectFormat maps a file extension to a format name, or "" if unknown.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return ""
}
