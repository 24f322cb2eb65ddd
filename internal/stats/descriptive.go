// Package stats computes the descriptive and missing-value analyses that
// feed the report.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// StatNames is the ordered set of statistics produced for every numeric
// column. The order is stable and doubles as the positional offset scheme:
// ColumnStats.Values[i] holds the statistic named StatNames[i].
var StatNames = []string{
	"min", "max", "mean", "median", "std_dev", "q1", "q3", "iqr",
	"skewness_bias", "skewness_raw", "kurtosis", "count",
}

var statIndex = func() map[string]int {
	m := make(map[string]int, len(StatNames))
	for i, name := range StatNames {
		m[name] = i
	}
	return m
}()

// ErrUnknownStat is returned for a statistic name outside StatNames. It
// indicates a contract violation between the analysis and the layout
// engine, not a recoverable condition.
var ErrUnknownStat = errors.New("unknown statistic")

// StatIndex returns the positional offset of a statistic name.
func StatIndex(name string) (int, bool) {
	i, ok := statIndex[name]
	return i, ok
}

// ColumnStats holds one numeric column's statistics, ordered per StatNames.
type ColumnStats struct {
	Name   string
	Values []float64
}

// Value looks a statistic up by name.
func (c *ColumnStats) Value(name string) (float64, error) {
	i, ok := statIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s (column %s)", ErrUnknownStat, name, c.Name)
	}
	return c.Values[i], nil
}

// Analysis is the full descriptive analysis: dataset shape plus per-column
// statistics for every numeric column, in dataset order.
type Analysis struct {
	NRows   int
	NCols   int
	Columns []ColumnStats
}

// Describe computes the descriptive analysis over the dataset's numeric
// columns. Missing values are excluded from every statistic; count reports
// the number of non-missing values.
func Describe(ds *dataset.Dataset) (*Analysis, error) {
	an := &Analysis{NRows: ds.Rows, NCols: len(ds.Columns)}
	for _, col := range ds.NumericColumns() {
		xs := make([]float64, 0, len(col.Nums))
		for _, v := range col.Nums {
			if !math.IsNaN(v) {
				xs = append(xs, v)
			}
		}
		an.Columns = append(an.Columns, describeColumn(col.Name, xs))
	}
	return an, nil
}

func describeColumn(name string, xs []float64) ColumnStats {
	values := make([]float64, len(StatNames))
	for i := range values {
		values[i] = math.NaN()
	}
	values[statIndex["count"]] = float64(len(xs))
	if len(xs) == 0 {
		return ColumnStats{Name: name, Values: values}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := float64(len(xs))
	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)

	values[statIndex["min"]] = sorted[0]
	values[statIndex["max"]] = sorted[len(sorted)-1]
	values[statIndex["mean"]] = stat.Mean(xs, nil)
	values[statIndex["median"]] = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	values[statIndex["q1"]] = q1
	values[statIndex["q3"]] = q3
	values[statIndex["iqr"]] = q3 - q1
	if len(xs) > 1 {
		values[statIndex["std_dev"]] = stat.StdDev(xs, nil)
	}

	// Central moments: raw (population) skewness, its bias-corrected form,
	// and bias-corrected excess kurtosis (Fisher's definition).
	m2 := stat.Moment(2, xs, nil)
	m3 := stat.Moment(3, xs, nil)
	m4 := stat.Moment(4, xs, nil)
	if m2 > 0 {
		g1 := m3 / math.Pow(m2, 1.5)
		values[statIndex["skewness_raw"]] = g1
		if len(xs) > 2 {
			values[statIndex["skewness_bias"]] = g1 * math.Sqrt(n*(n-1)) / (n - 2)
		}
		if len(xs) > 3 {
			g2 := m4/(m2*m2) - 3
			values[statIndex["kurtosis"]] = ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
		}
	}
	return ColumnStats{Name: name, Values: values}
}
