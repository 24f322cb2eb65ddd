package report

import (
	"fmt"
	"strconv"
)

// tocSectionName is the registry key the table of contents records for
// itself; its value is the number of pages the TOC occupies rather than a
// start page.
const tocSectionName = "Table of Contents"

// tableOfContents runs the second layout pass. It must be called after
// every body section has been written: it inserts the TOC page(s) right
// after the title page, renders one row per recorded section, writes roman
// folios on the TOC pages, shifts the whole section registry by the number
// of pages inserted, and finally writes arabic folios on the body pages.
//
// Rendered page numbers use the running pagesAdded value at the time each
// row is written, not the final total, so rows laid out after a TOC
// overflow reflect every page inserted so far.
func (m *pageManager) tableOfContents() (int, error) {
	const startPage = 1
	if err := m.doc.insertPageAt(startPage); err != nil {
		return 0, fmt.Errorf("table of contents: %w", err)
	}
	pagesAdded := 1

	if err := m.addText(tocSectionName, styleBold, sectionHeaderSize, 0.1, 0.9); err != nil {
		return 0, fmt.Errorf("table of contents: %w", err)
	}

	y := 0.85
	lineHeight := bodySize/pageHeight + linePadding

	// Snapshot: the loop below inserts pages and must not observe the
	// registry mutations performed at the end of this pass.
	records := make([]sectionRecord, len(m.sections))
	copy(records, m.sections)

	for _, rec := range records {
		if m.needNewPage(y, lineHeight) {
			if err := m.doc.insertPageAt(startPage + pagesAdded); err != nil {
				return 0, fmt.Errorf("table of contents: %w", err)
			}
			pagesAdded++
			y = 0.9
		}

		if err := m.addText(rec.name, styleRegular, bodySize, 0.1, y); err != nil {
			return 0, fmt.Errorf("table of contents row %q: %w", rec.name, err)
		}

		pageNum := strconv.Itoa(rec.page + pagesAdded)
		if err := m.addText(pageNum, styleRegular, bodySize, 0.9, y); err != nil {
			return 0, fmt.Errorf("table of contents row %q: %w", rec.name, err)
		}

		nameWidth := m.textWidth(rec.name, styleRegular, bodySize)
		numWidth := m.textWidth(pageNum, styleRegular, bodySize)
		if err := m.addDottedLine(0.1+nameWidth+0.01, 0.9-numWidth-0.01, y); err != nil {
			return 0, fmt.Errorf("table of contents row %q: %w", rec.name, err)
		}

		y -= lineHeight
	}

	// Front-matter folios: roman numerals on each TOC page.
	for i := 0; i < pagesAdded; i++ {
		folio := textOp{
			text:  toRoman(i + 1),
			style: styleRegular,
			size:  10.0,
			x:     0.95,
			y:     0.05,
			color: black,
		}
		if err := m.doc.appendTo(startPage+i, folio); err != nil {
			return 0, fmt.Errorf("table of contents folio %d: %w", i+1, err)
		}
	}

	// Every body page shifted down by the pages inserted above.
	for i := range m.sections {
		m.sections[i].page += pagesAdded
	}
	m.sections = append(m.sections, sectionRecord{name: tocSectionName, page: pagesAdded})

	if err := m.addPageNumbers(); err != nil {
		return 0, err
	}
	return pagesAdded, nil
}

// addPageNumbers writes arabic folios, starting at 1, on every page after
// the front matter (title page plus TOC pages).
func (m *pageManager) addPageNumbers() error {
	tocPages := 0
	for _, rec := range m.sections {
		if rec.name == tocSectionName {
			tocPages = rec.page
		}
	}
	folio := 1
	for index := tocPages + 1; index < m.doc.pageCount(); index++ {
		op := textOp{
			text:  strconv.Itoa(folio),
			style: styleRegular,
			size:  bodySize,
			x:     0.95,
			y:     0.05,
			color: black,
		}
		if err := m.doc.appendTo(index, op); err != nil {
			return fmt.Errorf("page numbers: %w", err)
		}
		folio++
	}
	return nil
}

var (
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	romanValues  = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
)

// toRoman converts n to standard subtractive roman notation. toRoman(0)
// returns the empty string.
func toRoman(n int) string {
	var out []byte
	for i, v := range romanValues {
		for n >= v {
			out = append(out, romanSymbols[i]...)
			n -= v
		}
	}
	return string(out)
}
