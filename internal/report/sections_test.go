package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
)

// fixtureDataset writes and loads a 3-column, 800-row CSV with no missing
// values.
func fixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("id,score,label\n")
	for i := 0; i < 800; i++ {
		fmt.Fprintf(&sb, "%d,%0.2f,item_%d\n", i, float64(i%17)*1.5, i)
	}
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ds, err := dataset.Load(path, true)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return ds
}

func TestAssembleSectionOrderAndRegistry(t *testing.T) {
	ds := fixtureDataset(t)
	analysis, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	m := newPageManager()
	in := Input{
		Dataset:  ds,
		Stats:    analysis,
		Missing:  stats.Missing(ds),
		Version:  "test",
		ReportID: "00000000-0000-0000-0000-000000000000",
	}
	if err := m.assemble(in); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	wantOrder := []string{
		"Data Types Overview",
		"Descriptive Analysis",
		"Missing Values Analysis",
		"Glossary",
		tocSectionName,
	}
	if len(m.sections) != len(wantOrder) {
		t.Fatalf("section registry %v, want %d entries", m.sections, len(wantOrder))
	}
	for i, name := range wantOrder {
		if m.sections[i].name != name {
			t.Errorf("sections[%d] = %q, want %q", i, m.sections[i].name, name)
		}
	}

	// Four sections fit on a single TOC page.
	if toc := m.sections[len(m.sections)-1]; toc.page != 1 {
		t.Errorf("TOC occupies %d pages, want 1", toc.page)
	}

	// Section start pages are in document order.
	for i := 1; i < len(m.sections)-1; i++ {
		if m.sections[i].page < m.sections[i-1].page {
			t.Errorf("section %q (page %d) precedes %q (page %d)",
				m.sections[i].name, m.sections[i].page,
				m.sections[i-1].name, m.sections[i-1].page)
		}
	}
}

func TestAssembleNeverPlacesRowsBelowMargin(t *testing.T) {
	ds := fixtureDataset(t)
	analysis, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	m := newPageManager()
	in := Input{Dataset: ds, Stats: analysis, Missing: stats.Missing(ds), Version: "test", ReportID: "id"}
	if err := m.assemble(in); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	// Apart from folios (placed at y=0.05 deliberately), no text lands
	// below the bottom margin: overflow must break the page first.
	for i, pg := range m.doc.pages {
		for _, op := range pg.ops {
			txt, ok := op.(textOp)
			if !ok || txt.y == 0.05 {
				continue
			}
			if txt.y < bottomMargin-1e-9 {
				t.Fatalf("page %d: text %q at y=%f below bottom margin", i, txt.text, txt.y)
			}
		}
	}
}

func TestGenerateWritesReport(t *testing.T) {
	ds := fixtureDataset(t)
	analysis, err := stats.Describe(ds)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}

	out := filepath.Join(t.TempDir(), "pokemon_report.pdf")
	in := Input{Dataset: ds, Stats: analysis, Missing: stats.Missing(ds), Version: "test", ReportID: "id"}
	if err := Generate(in, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if st.Size() == 0 {
		t.Fatal("report file is empty")
	}
}

func TestFormatStat(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		want string
	}{
		{"count", 800, "800"},
		{"mean", 1.23456, "1.2346"},
		{"iqr", 2, "2.0000"},
	}
	for _, tc := range cases {
		if got := formatStat(tc.name, tc.v); got != tc.want {
			t.Errorf("formatStat(%s, %v) = %q, want %q", tc.name, tc.v, got, tc.want)
		}
	}
}
