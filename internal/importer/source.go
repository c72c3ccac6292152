// ABOUTME: Import source adapter reading partner rows from spreadsheet files.
// ABOUTME: Supports .xlsx workbooks (first sheet) and .csv files, yielding rows in file order.
package importer

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
)

// ErrImportSource reports an import file that cannot be opened or parsed.
var ErrImportSource = errors.New("import source unreadable")

// Row is one imported (id, name) pair. Values are untrimmed cell contents.
type Row struct {
	ID   string
	Name string
}

// Source yields the rows of an import file, header included, in file order.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Open returns the source for path based on its extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &XLSXSource{Path: path}, nil
	case ".csv":
		return &CSVSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrImportSource, filepath.Ext(path))
	}
}

// ReadRows opens path and reads all of its rows.
func ReadRows(ctx context.Context, path string) ([]Row, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	return src.Rows(ctx)
}

// XLSXSource reads the first worksheet of an Excel workbook.
type XLSXSource struct {
	Path string
}

// Rows implements Source.
func (s *XLSXSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrImportSource, s.Path)
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
	}
	defer func() { _ = iter.Close() }()

	var rows []Row
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
		}
		rows = append(rows, rowFromCells(cols))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
	}
	return rows, nil
}

// CSVSource reads a comma or semicolon separated file.
type CSVSource struct {
	Path string
}

// Rows implements Source.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImportSource, err)
		}
		rows = append(rows, rowFromCells(rec))
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header line uses it, as spreadsheet
// exports in comma-decimal locales do.
func sniffDelimiter(data []byte) rune {
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func rowFromCells(cells []string) Row {
	var row Row
	if len(cells) > 0 {
		row.ID = cells[0]
	}
	if len(cells) > 1 {
		row.Name = cells[1]
	}
	return row
}
