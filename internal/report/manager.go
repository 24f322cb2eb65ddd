package report

import (
	"strings"
)

// Layout constants, as fractions of the page size unless noted.
const (
	// sectionHeaderSize is the font size for top-level section headers, in points.
	sectionHeaderSize = 24.0
	// featureHeaderSize is the font size for per-feature sub-headers, in points.
	featureHeaderSize = 14.0
	// bodySize is the normal text font size, in points.
	bodySize = 12.0
	// bottomMargin is the lower bound of the usable area.
	bottomMargin = 0.1
	// linePadding is the extra spacing between consecutive lines of text.
	linePadding = 0.005
)

const (
	styleRegular = ""
	styleBold    = "B"
	styleItalic  = "I"
)

type sectionRecord struct {
	name string
	page int
}

// pageManager owns the document, the current-page pointer, and the section
// registry consumed by the table-of-contents pass. All placement methods
// operate on the current page; overflow decisions are made by callers via
// needNewPage before each logical row, never mid-row.
type pageManager struct {
	doc      *document
	sections []sectionRecord
}

func newPageManager() *pageManager {
	return &pageManager{doc: newDocument()}
}

// newPage appends a page at the end of the document and makes it current.
func (m *pageManager) newPage() {
	m.doc.newPageAtEnd()
}

// recordSection registers the page on which a section starts. Must be
// called right after the section's opening newPage. Recorded values are
// shifted in bulk, exactly once, by the table-of-contents pass.
func (m *pageManager) recordSection(name string) {
	m.sections = append(m.sections, sectionRecord{name: name, page: m.doc.current - 1})
}

// needNewPage reports whether content of the given height would cross the
// bottom margin if placed at y.
func (m *pageManager) needNewPage(y, contentHeight float64) bool {
	return y-contentHeight < bottomMargin
}

// addText places a single line of text with its baseline at the given page
// fractions. No wrapping happens here; callers pre-wrap with wrapText.
func (m *pageManager) addText(text, style string, size, x, y float64) error {
	pg, err := m.doc.currentPage()
	if err != nil {
		return err
	}
	pg.ops = append(pg.ops, textOp{text: text, style: style, size: size, x: x, y: y, color: black})
	return nil
}

func (m *pageManager) addLine(x1, y1, x2, y2, width float64) error {
	pg, err := m.doc.currentPage()
	if err != nil {
		return err
	}
	pg.ops = append(pg.ops, lineOp{x1: x1, y1: y1, x2: x2, y2: y2, width: width})
	return nil
}

func (m *pageManager) addRect(x1, y1, x2, y2 float64, fill rgb) error {
	pg, err := m.doc.currentPage()
	if err != nil {
		return err
	}
	pg.ops = append(pg.ops, rectOp{x1: x1, y1: y1, x2: x2, y2: y2, fill: fill})
	return nil
}

// addImage embeds a raster image with its top-left corner at (x, y).
func (m *pageManager) addImage(path string, x, y, w, h float64) error {
	pg, err := m.doc.currentPage()
	if err != nil {
		return err
	}
	pg.ops = append(pg.ops, imageOp{path: path, x: x, y: y, w: w, h: h})
	return nil
}

// textWidth returns the rendered width of text as a fraction of page width.
func (m *pageManager) textWidth(text, style string, size float64) float64 {
	return m.doc.textWidth(text, style, size)
}

// wrapText greedily wraps text into lines that fit between offset and
// maxWidth. Every input word lands in exactly one output line; a single
// word wider than the available space still gets a line of its own.
func (m *pageManager) wrapText(text string, offset, maxWidth float64, style string, size float64) []string {
	var lines []string
	var current string
	available := maxWidth - offset

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.textWidth(candidate, style, size) <= available {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// addDottedLine fills the gap between startX and endX with a run of dots,
// sized by measurement. The run stops short of endX rather than overshoot
// into whatever follows the leader.
func (m *pageManager) addDottedLine(startX, endX, y float64) error {
	total := endX - startX
	if total <= 0 {
		return nil
	}
	var leader string
	for {
		next := leader + "."
		if m.textWidth(next, styleRegular, bodySize) > total {
			break
		}
		leader = next
	}
	if leader == "" {
		return nil
	}
	return m.addText(leader, styleRegular, bodySize, startX, y)
}
