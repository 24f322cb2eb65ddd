// Package viz renders the report's diagnostic plots to PNG files. The
// layout engine only sees the resulting {title, path} pairs.
package viz

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// Plot is one rendered diagnostic image.
type Plot struct {
	Title string
	Path  string
}

// sampleCap bounds the number of rows drawn in the missing-value heatmap;
// beyond it rows are sampled at a fixed stride.
const sampleCap = 200

// Render produces the fixed set of diagnostic plots into dir, creating it
// if needed, and returns them in report order.
func Render(ds *dataset.Dataset, dir string, log *slog.Logger) ([]Plot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	plots := []struct {
		title string
		file  string
		fn    func(*dataset.Dataset, string) error
	}{
		{"Missing Value Heatmap", "missing_value_heatmap.png", missingHeatmap},
		{"Missingness Correlation", "missingness_correlation.png", missingnessCorrelation},
	}

	out := make([]Plot, 0, len(plots))
	for _, p := range plots {
		path := filepath.Join(dir, p.file)
		if err := p.fn(ds, path); err != nil {
			return nil, fmt.Errorf("render %q: %w", p.title, err)
		}
		log.Debug("rendered plot", "title", p.title, "path", path)
		out = append(out, Plot{Title: p.title, Path: path})
	}
	return out, nil
}

// grid adapts a dense matrix to plotter.GridXYZ.
type grid struct {
	z    [][]float64 // z[row][col]
	cols int
}

func (g grid) Dims() (int, int)   { return g.cols, len(g.z) }
func (g grid) Z(c, r int) float64 { return g.z[r][c] }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// missingHeatmap draws a rows-by-columns 0/1 missingness matrix, sampling
// rows down to sampleCap.
func missingHeatmap(ds *dataset.Dataset, path string) error {
	rows := ds.Rows
	stride := 1
	if rows > sampleCap {
		stride = rows / sampleCap
	}

	var z [][]float64
	for r := 0; r < rows; r += stride {
		rowZ := make([]float64, len(ds.Columns))
		for c := range ds.Columns {
			if ds.Columns[c].Cells[r] == "" {
				rowZ[c] = 1
			}
		}
		z = append(z, rowZ)
	}
	if len(z) == 0 {
		z = [][]float64{make([]float64, len(ds.Columns))}
	}

	return saveHeatmap(grid{z: z, cols: len(ds.Columns)}, "Missing Value Heatmap", "column", "row", 0, 1, path)
}

// missingnessCorrelation draws the pairwise Pearson correlation of the
// per-column missing indicators. Columns with constant missingness (never
// or always missing) correlate as 0 off the diagonal.
func missingnessCorrelation(ds *dataset.Dataset, path string) error {
	z := correlationMatrix(ds)
	return saveHeatmap(grid{z: z, cols: len(ds.Columns)}, "Missingness Correlation", "column", "column", -1, 1, path)
}

func correlationMatrix(ds *dataset.Dataset) [][]float64 {
	n := len(ds.Columns)
	indicators := make([][]float64, n)
	for c := range ds.Columns {
		ind := make([]float64, ds.Rows)
		for r, cell := range ds.Columns[c].Cells {
			if cell == "" {
				ind[r] = 1
			}
		}
		indicators[c] = ind
	}

	z := make([][]float64, n)
	for i := 0; i < n; i++ {
		z[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				z[i][j] = 1
			case constant(indicators[i]) || constant(indicators[j]):
				z[i][j] = 0
			default:
				z[i][j] = stat.Correlation(indicators[i], indicators[j], nil)
			}
		}
	}
	return z
}

func constant(xs []float64) bool {
	for _, x := range xs {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func saveHeatmap(g grid, title, xLabel, yLabel string, min, max float64, path string) error {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(min)
	cm.SetMax(max)

	hm := plotter.NewHeatMap(g, cm.Palette(255))
	hm.Min = min
	hm.Max = max

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
