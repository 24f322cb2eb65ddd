// Package report lays out the exploratory-analysis findings into a
// paginated PDF: fixed A4 pages, a vertical cursor with overflow-driven
// page breaks, and a second pass that inserts a table of contents whose
// page numbers account for the pages the insertion itself displaces.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/dataloom-cli/internal/dataset"
	"github.com/KaramelBytes/dataloom-cli/internal/stats"
	"github.com/KaramelBytes/dataloom-cli/internal/viz"
)

// Input carries everything the assembler renders. Plots may be nil when
// visualizations are disabled.
type Input struct {
	Dataset  *dataset.Dataset
	Stats    *stats.Analysis
	Missing  *stats.MissingAnalysis
	Plots    []viz.Plot
	Version  string
	ReportID string
}

// Generate builds the complete report and writes it to outPath. Section
// order is a hard precondition: the table of contents must run last, since
// it rewrites every page index recorded by the sections before it. Nothing
// is written to disk if any stage fails.
func Generate(in Input, outPath string) error {
	m := newPageManager()
	if err := m.assemble(in); err != nil {
		return err
	}
	return m.doc.save(outPath)
}

func (m *pageManager) assemble(in Input) error {
	if err := m.titlePage(in.Dataset.Title, in.Version, in.ReportID); err != nil {
		return fmt.Errorf("title page: %w", err)
	}
	if err := m.dataTypesSection(in.Dataset); err != nil {
		return fmt.Errorf("data types section: %w", err)
	}
	if err := m.descriptiveSection(in.Stats); err != nil {
		return fmt.Errorf("descriptive section: %w", err)
	}
	if err := m.missingValuesSection(in.Missing, in.Plots); err != nil {
		return fmt.Errorf("missing values section: %w", err)
	}
	if err := m.glossarySection(); err != nil {
		return fmt.Errorf("glossary section: %w", err)
	}
	if _, err := m.tableOfContents(); err != nil {
		return err
	}
	return nil
}

func (m *pageManager) titlePage(title, version, reportID string) error {
	m.newPage()

	if err := m.addText("Exploratory Data", styleBold, 48, 0.1, 0.9); err != nil {
		return err
	}
	if err := m.addText("Analysis Report", styleBold, 48, 0.1, 0.83); err != nil {
		return err
	}
	if err := m.addLine(0.1, 0.8, 0.9, 0.8, 2); err != nil {
		return err
	}
	if err := m.addText(fmt.Sprintf("Dataset: %s", title), styleRegular, 24, 0.1, 0.75); err != nil {
		return err
	}

	if err := m.addText("This report provides a comprehensive exploratory analysis of the dataset,", styleRegular, 14, 0.1, 0.65); err != nil {
		return err
	}
	if err := m.addText("including statistical summaries, missing values, and key insights.", styleRegular, 14, 0.1, 0.62); err != nil {
		return err
	}

	date := time.Now().Format("January 2, 2006")
	if err := m.addText(fmt.Sprintf("Generated on: %s", date), styleRegular, bodySize, 0.1, 0.2); err != nil {
		return err
	}
	if err := m.addText(fmt.Sprintf("dataloom version: %s", version), styleRegular, bodySize, 0.1, 0.17); err != nil {
		return err
	}
	return m.addText(fmt.Sprintf("Report ID: %s", reportID), styleRegular, bodySize, 0.1, 0.14)
}

func (m *pageManager) dataTypesSection(ds *dataset.Dataset) error {
	m.newPage()
	m.recordSection("Data Types Overview")

	if err := m.addText("Data Types Overview", styleBold, sectionHeaderSize, 0.1, 0.9); err != nil {
		return err
	}

	const (
		yStart = 0.85
		col1X  = 0.1
		col2X  = 0.4
		col3X  = 0.7
		rightX = 0.9
	)
	lineHeight := bodySize/pageHeight + 2*linePadding

	for _, h := range []struct {
		text string
		x    float64
	}{{"Feature", col1X}, {"Data Type", col2X}, {"Category", col3X}} {
		if err := m.addText(h.text, styleBold, bodySize, h.x, yStart); err != nil {
			return err
		}
	}
	if err := m.addLine(col1X, yStart-0.5*lineHeight, rightX, yStart-0.5*lineHeight, 1); err != nil {
		return err
	}

	y := yStart - 2*lineHeight
	rowCount := 0
	for _, col := range ds.Columns {
		if m.needNewPage(y, 3*lineHeight) {
			m.newPage()
			y = 0.9
		}

		// Zebra striping; parity carries across page breaks.
		if rowCount%2 == 0 {
			if err := m.addRect(col1X, y+lineHeight, rightX, y-lineHeight, zebraGray); err != nil {
				return err
			}
		}

		if err := m.addText(col.Name, styleRegular, bodySize, col1X+0.01, y); err != nil {
			return err
		}
		if err := m.addText(col.Kind.String(), styleRegular, bodySize, col2X, y); err != nil {
			return err
		}

		wrapped := m.wrapText(kindCategory(col.Kind), col3X, rightX, styleRegular, bodySize)
		for i, line := range wrapped {
			if err := m.addText(line, styleRegular, bodySize, col3X, y-float64(i)*lineHeight); err != nil {
				return err
			}
		}

		y -= (float64(len(wrapped)) + 1) * lineHeight
		rowCount++
	}
	return nil
}

func (m *pageManager) descriptiveSection(an *stats.Analysis) error {
	m.newPage()
	m.recordSection("Descriptive Analysis")

	if err := m.addText("Descriptive Analysis", styleBold, sectionHeaderSize, 0.1, 0.9); err != nil {
		return err
	}

	y := 0.86
	lineHeight := bodySize/pageHeight + linePadding
	featureLineHeight := featureHeaderSize / pageHeight

	if err := m.addText("Shape:", styleBold, bodySize, 0.1, y); err != nil {
		return err
	}
	shapeWidth := m.textWidth("Shape:", styleBold, bodySize)
	shape := fmt.Sprintf("%d rows, %d columns", an.NRows, an.NCols)
	if err := m.addText(shape, styleRegular, bodySize, 0.1+shapeWidth+0.005, y); err != nil {
		return err
	}
	y -= 2 * lineHeight

	for i := range an.Columns {
		col := &an.Columns[i]
		if m.needNewPage(y, featureLineHeight+7*lineHeight) {
			m.newPage()
			y = 0.9
		}

		if err := m.addText(col.Name, styleBold, featureHeaderSize, 0.1, y); err != nil {
			return err
		}
		y -= featureLineHeight

		if err := m.addLine(0.1, y+linePadding, 0.9, y+linePadding, 0.5); err != nil {
			return err
		}
		y -= lineHeight

		// Two-column stat layout. The cursor only advances once both
		// columns of a row pair are filled.
		const (
			leftColumn  = 0.15
			rightColumn = 0.55
		)
		counter := 0
		for _, statName := range stats.StatNames {
			x := leftColumn
			if counter%2 == 1 {
				x = rightColumn
			}

			if err := m.addText(statName+":", styleBold, bodySize, x, y); err != nil {
				return err
			}
			v, err := col.Value(statName)
			if err != nil {
				return err
			}
			if err := m.addText(formatStat(statName, v), styleRegular, bodySize, x+0.2, y); err != nil {
				return err
			}

			if counter%2 == 1 {
				y -= lineHeight
			}
			counter++

			if counter%2 == 0 && m.needNewPage(y-lineHeight, lineHeight) {
				m.newPage()
				y = 0.9
			}
		}
		if counter%2 == 1 {
			y -= lineHeight
		}
		y -= 1.5 * lineHeight
	}
	return nil
}

func (m *pageManager) missingValuesSection(an *stats.MissingAnalysis, plots []viz.Plot) error {
	m.newPage()
	m.recordSection("Missing Values Analysis")

	if err := m.addText("Missing Values Analysis", styleBold, sectionHeaderSize, 0.1, 0.9); err != nil {
		return err
	}

	y := 0.85
	lineHeight := bodySize/pageHeight + linePadding + 0.005

	for _, h := range []struct {
		text string
		x    float64
	}{{"Feature", 0.1}, {"Missing Count", 0.4}, {"Missing Percentage", 0.7}} {
		if err := m.addText(h.text, styleBold, bodySize, h.x, y); err != nil {
			return err
		}
	}
	if err := m.addLine(0.1, y-0.02, 0.9, y-0.02, 1); err != nil {
		return err
	}
	y -= 2 * lineHeight

	for _, col := range an.Columns {
		if err := m.addText(col.Name, styleRegular, bodySize, 0.1, y); err != nil {
			return err
		}
		if err := m.addText(fmt.Sprintf("%d", col.Count), styleRegular, bodySize, 0.4, y); err != nil {
			return err
		}
		if err := m.addText(fmt.Sprintf("%.2f%%", col.Pct), styleRegular, bodySize, 0.7, y); err != nil {
			return err
		}

		y -= lineHeight
		if m.needNewPage(y, lineHeight) {
			m.newPage()
			y = 0.9
		}
	}

	// Diagnostic plots, one per page, stay inside this section.
	for _, plot := range plots {
		m.newPage()
		if err := m.addText(plot.Title, styleBold, featureHeaderSize, 0.1, 0.9); err != nil {
			return err
		}
		if err := m.addImage(plot.Path, 0.1, 0.85, 0.8, 0.6); err != nil {
			return err
		}
	}
	return nil
}

func (m *pageManager) glossarySection() error {
	m.newPage()
	m.recordSection("Glossary")

	if err := m.addText("Glossary", styleBold, sectionHeaderSize, 0.1, 0.9); err != nil {
		return err
	}

	y := 0.85
	termLineHeight := 12.0/pageHeight + linePadding
	defLineHeight := 10.0/pageHeight + linePadding

	const (
		termOffset = 0.1
		defOffset  = 0.15
		maxWidth   = 0.9
	)

	for _, entry := range glossaryEntries {
		if m.needNewPage(y, termLineHeight+defLineHeight) {
			m.newPage()
			y = 0.9
		}

		if err := m.addText(entry.term, styleBold, 12, termOffset, y); err != nil {
			return err
		}
		y -= termLineHeight

		for _, line := range m.wrapText(entry.definition, defOffset, maxWidth, styleRegular, 10) {
			if m.needNewPage(y, defLineHeight) {
				m.newPage()
				y = 0.9
			}
			if err := m.addText(line, styleRegular, 10, defOffset, y); err != nil {
				return err
			}
			y -= defLineHeight
		}
		y -= 0.5 * defLineHeight
	}
	return nil
}

// formatStat renders a statistic value for display. Counts print as whole
// numbers; everything else gets four decimals. NaN marks statistics that
// are undefined for the column's sample size.
func formatStat(name string, v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if name == "count" {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.4f", v)
}
