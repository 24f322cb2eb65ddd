package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/KaramelBytes/dataloom-cli/internal/config"
	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
)

// execute runs the root command with a fixed configuration, capturing
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = &cfgpkg.Global{OutputDir: ".", PlotsDir: "plots"}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReportCommandWritesReport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "pets.csv")
	data := "name,age,weight\notter,3,11.5\nlynx,,14.0\nheron,2,1.8\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := execute(t, "report", csvPath, "-o", dir)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	wantPath := filepath.Join(dir, "pets_report.pdf")
	if !strings.Contains(out, "Report written to "+wantPath) {
		t.Errorf("output %q does not announce %q", out, wantPath)
	}
	info, err := os.Stat(wantPath)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Size() == 0 {
		t.Error("report file is empty")
	}
}

func TestReportCommandUnsupportedFormat(t *testing.T) {
	if _, err := execute(t, "report", "pets.xlsx"); !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
