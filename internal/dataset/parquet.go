package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// loadParquet reads a flat Parquet file into a Dataset. Nested schemas are
// rejected; each leaf column maps straight onto a report column. Nulls
// become missing cells.
func loadParquet(path, title string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("parquet %s: nested column %q not supported", path, field.Name())
		}
		names[i] = field.Name()
	}

	cells := make([][]string, len(fields))
	rowCount := 0
	buf := make([]parquet.Row, 64)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					ci := v.Column()
					if ci < 0 || ci >= len(cells) {
						continue
					}
					cells[ci] = append(cells[ci], formatValue(v))
				}
				rowCount++
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, fmt.Errorf("read parquet %s: %w", path, err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("close parquet reader %s: %w", path, err)
		}
	}

	rows := make([][]string, rowCount)
	for i := range rows {
		row := make([]string, len(fields))
		for j := range fields {
			if i < len(cells[j]) {
				row[j] = cells[j][i]
			}
		}
		rows[i] = row
	}
	return build(title, names, rows)
}

// formatValue renders a parquet value as a raw cell. Nulls map to the
// empty string, the dataset's missing marker.
func formatValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 64)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return v.String()
	}
}
