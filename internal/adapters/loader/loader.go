// Package loader reads scorecard exports (CSV or XLSX) into a model.Table.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/qainsight/internal/domain/model"
	"github.com/okian/qainsight/pkg/logger"
)

const bom = "\ufeff"

// DefaultMissingMarkers are cell texts read as missing values.
var DefaultMissingMarkers = []string{
	"NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "-NaN", "<NA>",
}

// Loader converts exports into tables.
type Loader struct {
	log     logger.Logger
	sheet   string
	missing map[string]struct{}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{log: logger.Nop()}
	l.setMissing(DefaultMissingMarkers)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) setMissing(markers []string) {
	l.missing = make(map[string]struct{}, len(markers))
	for _, m := range markers {
		l.missing[m] = struct{}{}
	}
}

// LoadFile picks the reader by file extension.
func (l *Loader) LoadFile(ctx context.Context, path string) (*model.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var t *model.Table
	if ext == ".csv" {
		t, err = l.ReadCSV(ctx, f)
	} else {
		t, err = l.ReadXLSX(ctx, f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	l.log.Info(ctx, "table loaded",
		logger.String("path", path),
		logger.Int("columns", len(t.Columns)),
		logger.Int("rows", t.Len()))
	return t, nil
}

// ReadCSV reads a comma-separated export. The first record is the header.
func (l *Loader) ReadCSV(_ context.Context, r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var raw [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(raw)+1, err)
		}
		raw = append(raw, record)
	}
	return l.build(header, raw), nil
}

// ReadXLSX reads the configured sheet, or the first one, of a workbook.
func (l *Loader) ReadXLSX(_ context.Context, r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyInput
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return l.build(rows[0], rows[1:]), nil
}

// build pads short rows with missing cells, drops cells past the header and
// skips rows with no value at all.
func (l *Loader) build(header []string, raw [][]string) *model.Table {
	columns := make([]string, len(header))
	copy(columns, header)
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], bom)
	}

	rows := make([][]model.Value, 0, len(raw))
	for _, record := range raw {
		row := make([]model.Value, len(columns))
		empty := true
		for c := range columns {
			v := model.Missing()
			if c < len(record) {
				v = l.cell(record[c])
			}
			if !v.IsMissing() {
				empty = false
			}
			row[c] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return model.NewTable(columns, rows)
}

func (l *Loader) cell(s string) model.Value {
	if strings.TrimSpace(s) == "" {
		return model.Missing()
	}
	if _, ok := l.missing[s]; ok {
		return model.Missing()
	}
	return model.Text(s)
}
