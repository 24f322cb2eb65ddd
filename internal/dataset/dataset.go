// Package dataset loads tabular data files (CSV, TSV, Parquet) into typed
// in-memory columns and infers a schema for them.
package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

// Numeric reports whether columns of this kind participate in the
// descriptive analysis.
func (k Kind) Numeric() bool {
	return k == Int || k == Float
}

// String returns the type tag shown in the report.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int64"
	case Float:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "string"
	}
}

// Column holds one column of the dataset. Cells keeps the raw values, with
// the empty string marking a missing value. For numeric kinds, Nums runs
// parallel to Cells with NaN at missing or unparseable positions.
type Column struct {
	Name  string
	Kind  Kind
	Cells []string
	Nums  []float64
}

// Missing counts the column's missing values.
func (c *Column) Missing() uint64 {
	var n uint64
	for _, cell := range c.Cells {
		if cell == "" {
			n++
		}
	}
	return n
}

// Dataset is the loaded table: a title (the file stem), the columns in file
// order, and the row count.
type Dataset struct {
	Title   string
	Columns []Column
	Rows    int
}

// NumericColumns returns the columns, in order, that carry numeric data.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for i := range d.Columns {
		if d.Columns[i].Kind.Numeric() {
			out = append(out, &d.Columns[i])
		}
	}
	return out
}

// inferKind classifies a column from its raw cells. A column is Int when
// every non-missing cell parses as an integer, Float when every non-missing
// cell parses as a float, Bool when every non-missing cell is true/false,
// and String otherwise. An all-missing column stays String.
func inferKind(cells []string) Kind {
	seen := false
	isInt, isFloat, isBool := true, true, true
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		seen = true
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			switch strings.ToLower(cell) {
			case "true", "false":
			default:
				isBool = false
			}
		}
	}
	switch {
	case !seen:
		return String
	case isInt:
		return Int
	case isFloat:
		return Float
	case isBool:
		return Bool
	default:
		return String
	}
}

// parseNums builds the numeric view of a column, with NaN standing in for
// missing or unparseable cells.
func parseNums(cells []string) []float64 {
	nums := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			nums[i] = math.NaN()
			continue
		}
		nums[i] = v
	}
	return nums
}
