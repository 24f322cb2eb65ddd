package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Named error conditions surfaced before any layout work begins.
var (
	// ErrNoExtension is returned when the input path has no file extension.
	ErrNoExtension = errors.New("no file extension")
	// ErrUnsupportedFormat is returned for extensions other than .csv, .tsv, .parquet.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDuplicateColumn is returned when two columns share a header name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Load reads the file at path into a Dataset, dispatching on the file
// extension. When header is false the first row is treated as data and
// column names are synthesized as column_1..column_n.
func Load(path string, header bool) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch ext {
	case "":
		return nil, fmt.Errorf("%w: %s", ErrNoExtension, path)
	case ".csv":
		return loadDelimited(path, title, ',', header)
	case ".tsv":
		return loadDelimited(path, title, '\t', header)
	case ".parquet":
		return loadParquet(path, title)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func loadDelimited(path, title string, comma rune, header bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Dataset{Title: title}, nil
	}

	var names []string
	var rows [][]string
	if header {
		names = records[0]
		rows = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("column_%d", i+1)
		}
		rows = records
	}

	return build(title, names, rows)
}

// build assembles a Dataset from a header row and data rows, checking for
// duplicate headers and inferring a kind per column. Short rows are padded
// with missing cells.
func build(title string, names []string, rows [][]string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(names))
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if _, dup := seen[names[i]]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, names[i])
		}
		seen[names[i]] = struct{}{}
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cells := make([]string, len(rows))
		for j, row := range rows {
			if i < len(row) {
				cells[j] = strings.TrimSpace(row[i])
			}
		}
		cols[i] = Column{Name: name, Cells: cells}
	}

	for i := range cols {
		cols[i].Kind = inferKind(cols[i].Cells)
		if cols[i].Kind.Numeric() {
			cols[i].Nums = parseNums(cols[i].Cells)
		}
	}

	return &Dataset{Title: title, Columns: cols, Rows: len(rows)}, nil
}
