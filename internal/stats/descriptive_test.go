package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestDescribeColumn(t *testing.T) {
	// Hand-checked reference values for this sample: mean 5, sample
	// variance 32/7, central moments m2=4, m3=5.25, m4=44.5.
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	cs := describeColumn("score", xs)

	want := map[string]float64{
		"min":           2,
		"max":           9,
		"mean":          5,
		"median":        4.5,
		"std_dev":       math.Sqrt(32.0 / 7.0),
		"q1":            4,
		"q3":            5.5,
		"iqr":           1.5,
		"skewness_raw":  0.65625,
		"skewness_bias": 0.65625 * math.Sqrt(56) / 6,
		"kurtosis":      0.940625,
		"count":         8,
	}
	for name, w := range want {
		got, err := cs.Value(name)
		if err != nil {
			t.Fatalf("Value(%s): %v", name, err)
		}
		if !approx(got, w) {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestDescribeColumnEmpty(t *testing.T) {
	cs := describeColumn("empty", nil)
	count, err := cs.Value("count")
	if err != nil {
		t.Fatalf("Value(count): %v", err)
	}
	if count != 0 {
		t.Errorf("count = %v, want 0", count)
	}
	for _, name := range StatNames {
		if name == "count" {
			continue
		}
		v, err := cs.Value(name)
		if err != nil {
			t.Fatalf("Value(%s): %v", name, err)
		}
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
}

func TestDescribeColumnSmallSamples(t *testing.T) {
	// A single value has no spread; two values have no bias-corrected
	// skewness; three no bias-corrected kurtosis.
	one := describeColumn("one", []float64{5})
	if v, _ := one.Value("std_dev"); !math.IsNaN(v) {
		t.Errorf("n=1 std_dev = %v, want NaN", v)
	}
	if v, _ := one.Value("min"); v != 5 {
		t.Errorf("n=1 min = %v, want 5", v)
	}

	two := describeColumn("two", []float64{1, 3})
	if v, _ := two.Value("skewness_bias"); !math.IsNaN(v) {
		t.Errorf("n=2 skewness_bias = %v, want NaN", v)
	}
	if v, _ := two.Value("std_dev"); !approx(v, math.Sqrt2) {
		t.Errorf("n=2 std_dev = %v, want sqrt(2)", v)
	}

	three := describeColumn("three", []float64{1, 2, 4})
	if v, _ := three.Value("kurtosis"); !math.IsNaN(v) {
		t.Errorf("n=3 kurtosis = %v, want NaN", v)
	}
	if v, _ := three.Value("skewness_bias"); math.IsNaN(v) {
		t.Error("n=3 skewness_bias is NaN, want a value")
	}
}

func TestDescribeColumnConstant(t *testing.T) {
	cs := describeColumn("flat", []float64{7, 7, 7, 7})
	if v, _ := cs.Value("skewness_raw"); !math.IsNaN(v) {
		t.Errorf("constant skewness_raw = %v, want NaN", v)
	}
	if v, _ := cs.Value("std_dev"); v != 0 {
		t.Errorf("constant std_dev = %v, want 0", v)
	}
}

func TestDescribeSkipsMissingAndNonNumeric(t *testing.T) {
	ds := &dataset.Dataset{
		Rows: 4,
		Columns: []dataset.Column{
			{
				Name:  "v",
				Kind:  dataset.Float,
				Cells: []string{"1", "", "3", "5"},
				Nums:  []float64{1, math.NaN(), 3, 5},
			},
			{Name: "label", Kind: dataset.String, Cells: []string{"a", "b", "c", "d"}},
		},
	}
	an, err := Describe(ds)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if an.NRows != 4 || an.NCols != 2 {
		t.Errorf("shape = %dx%d, want 4x2", an.NRows, an.NCols)
	}
	if len(an.Columns) != 1 {
		t.Fatalf("got %d analyzed columns, want 1", len(an.Columns))
	}
	cs := an.Columns[0]
	if count, _ := cs.Value("count"); count != 3 {
		t.Errorf("count = %v, want 3", count)
	}
	if mean, _ := cs.Value("mean"); !approx(mean, 3) {
		t.Errorf("mean = %v, want 3", mean)
	}
}

func TestValueUnknownStat(t *testing.T) {
	cs := describeColumn("x", []float64{1, 2})
	if _, err := cs.Value("mode"); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("err = %v, want ErrUnknownStat", err)
	}
}

func TestStatIndexMatchesOrder(t *testing.T) {
	for i, name := range StatNames {
		got, ok := StatIndex(name)
		if !ok || got != i {
			t.Errorf("StatIndex(%s) = %d, %v, want %d, true", name, got, ok, i)
		}
	}
	if _, ok := StatIndex("variance"); ok {
		t.Error("StatIndex(variance) = true, want false")
	}
}
