package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type petRow struct {
	Name   string  `parquet:"name"`
	Age    *int64  `parquet:"age,optional"`
	Weight float64 `parquet:"weight"`
	Tame   bool    `parquet:"tame"`
}

// writeParquetFixture writes four rows split across two row groups, with
// one null in the optional age column.
func writeParquetFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pets.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	age := func(n int64) *int64 { return &n }
	w := parquet.NewGenericWriter[petRow](f)
	if _, err := w.Write([]petRow{
		{Name: "otter", Age: age(3), Weight: 11.5, Tame: true},
		{Name: "lynx", Age: nil, Weight: 14.0, Tame: false},
	}); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	// Close the current row group so the reader has to stitch rows back
	// together across a group boundary.
	if err := w.Flush(); err != nil {
		t.Fatalf("flush row group: %v", err)
	}
	if _, err := w.Write([]petRow{
		{Name: "heron", Age: age(2), Weight: 1.8, Tame: true},
		{Name: "vole", Age: age(1), Weight: 0.03, Tame: true},
	}); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return path
}

func TestLoadParquet(t *testing.T) {
	ds, err := Load(writeParquetFixture(t), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Title != "pets" {
		t.Errorf("Title = %q, want pets", ds.Title)
	}
	if ds.Rows != 4 {
		t.Errorf("Rows = %d, want 4", ds.Rows)
	}
	if len(ds.Columns) != 4 {
		t.Fatalf("got %d columns, want 4", len(ds.Columns))
	}

	wantKinds := map[string]Kind{"name": String, "age": Int, "weight": Float, "tame": Bool}
	cols := make(map[string]*Column, len(ds.Columns))
	for i := range ds.Columns {
		col := &ds.Columns[i]
		cols[col.Name] = col
		want, ok := wantKinds[col.Name]
		if !ok {
			t.Errorf("unexpected column %q", col.Name)
			continue
		}
		if col.Kind != want {
			t.Errorf("column %s kind = %s, want %s", col.Name, col.Kind, want)
		}
	}

	// Row order must survive the per-column reassembly across row groups.
	wantNames := []string{"otter", "lynx", "heron", "vole"}
	for i, want := range wantNames {
		if got := cols["name"].Cells[i]; got != want {
			t.Errorf("name[%d] = %q, want %q", i, got, want)
		}
	}

	// The null lands as a missing cell, NaN in the numeric view.
	age := cols["age"]
	if age.Cells[1] != "" {
		t.Errorf("age[1] = %q, want missing", age.Cells[1])
	}
	if age.Missing() != 1 {
		t.Errorf("age Missing = %d, want 1", age.Missing())
	}
	if !math.IsNaN(age.Nums[1]) {
		t.Errorf("age Nums[1] = %v, want NaN", age.Nums[1])
	}
	if age.Nums[0] != 3 || age.Nums[2] != 2 || age.Nums[3] != 1 {
		t.Errorf("age Nums = %v, want [3 NaN 2 1]", age.Nums)
	}
	if w := cols["weight"].Nums; w[0] != 11.5 || w[3] != 0.03 {
		t.Errorf("weight Nums = %v", w)
	}
}

func TestLoadParquetRejectsNested(t *testing.T) {
	type owner struct {
		City string `parquet:"city"`
	}
	type nestedRow struct {
		Name  string `parquet:"name"`
		Owner owner  `parquet:"owner"`
	}

	path := filepath.Join(t.TempDir(), "nested.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	w := parquet.NewGenericWriter[nestedRow](f)
	if _, err := w.Write([]nestedRow{{Name: "otter", Owner: owner{City: "Bergen"}}}); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	if _, err := Load(path, true); err == nil {
		t.Fatal("expected an error for a nested schema")
	}
}
