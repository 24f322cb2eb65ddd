package stats

import "github.com/KaramelBytes/dataloom-cli/internal/dataset"

// ColumnMissing is one column's missing-value tally.
type ColumnMissing struct {
	Name  string
	Count uint64
	Pct   float64
}

// MissingAnalysis holds missing-value tallies for every column, in dataset
// order.
type MissingAnalysis struct {
	Columns []ColumnMissing
}

// Missing counts missing values per column. Pct is relative to the total
// row count; a zero-row dataset reports 0%.
func Missing(ds *dataset.Dataset) *MissingAnalysis {
	out := &MissingAnalysis{Columns: make([]ColumnMissing, 0, len(ds.Columns))}
	for i := range ds.Columns {
		col := &ds.Columns[i]
		count := col.Missing()
		pct := 0.0
		if ds.Rows > 0 {
			pct = float64(count) / float64(ds.Rows) * 100
		}
		out.Columns = append(out.Columns, ColumnMissing{Name: col.Name, Count: count, Pct: pct})
	}
	return out
}
