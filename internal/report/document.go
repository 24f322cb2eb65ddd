package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 portrait in points. Every page in the document uses this size.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
)

// Built-in core font family used for all text. Styles: "" regular, "B" bold,
// "I" italic.
const fontFamily = "Times"

type rgb struct {
	r, g, b int
}

var (
	black     = rgb{0, 0, 0}
	zebraGray = rgb{240, 240, 240}
)

// Draw operations are recorded with coordinates as fractions of the page
// size, origin at the bottom-left corner (larger y is higher on the page).
// Conversion to absolute points happens once, when the document is flushed
// into the PDF backend.
type drawOp interface {
	draw(pdf *fpdf.Fpdf)
}

type textOp struct {
	text  string
	style string
	size  float64
	x, y  float64
	color rgb
}

func (op textOp) draw(pdf *fpdf.Fpdf) {
	pdf.SetFont(fontFamily, op.style, op.size)
	pdf.SetTextColor(op.color.r, op.color.g, op.color.b)
	pdf.Text(op.x*pageWidth, (1-op.y)*pageHeight, op.text)
}

type lineOp struct {
	x1, y1, x2, y2 float64
	width          float64
}

func (op lineOp) draw(pdf *fpdf.Fpdf) {
	pdf.SetDrawColor(black.r, black.g, black.b)
	pdf.SetLineWidth(op.width)
	pdf.Line(op.x1*pageWidth, (1-op.y1)*pageHeight, op.x2*pageWidth, (1-op.y2)*pageHeight)
}

type rectOp struct {
	x1, y1, x2, y2 float64
	fill           rgb
}

func (op rectOp) draw(pdf *fpdf.Fpdf) {
	top := op.y1
	if op.y2 > top {
		top = op.y2
	}
	w := (op.x2 - op.x1) * pageWidth
	h := (op.y1 - op.y2) * pageHeight
	if h < 0 {
		h = -h
	}
	pdf.SetFillColor(op.fill.r, op.fill.g, op.fill.b)
	pdf.Rect(op.x1*pageWidth, (1-top)*pageHeight, w, h, "F")
}

type imageOp struct {
	path       string
	x, y, w, h float64 // y is the top edge of the image
}

func (op imageOp) draw(pdf *fpdf.Fpdf) {
	opts := fpdf.ImageOptions{ImageType: "", ReadDpi: true}
	pdf.ImageOptions(op.path, op.x*pageWidth, (1-op.y)*pageHeight, op.w*pageWidth, op.h*pageHeight, false, opts, 0, "")
}

type page struct {
	ops []drawOp
}

// document is the in-memory page model. Pages hold ordered draw operations
// and are only rendered when save is called, so inserting a page at an
// arbitrary index is a plain slice insertion. A dedicated fpdf instance
// provides font metrics during layout; the instance that serializes the
// document is created fresh inside save.
type document struct {
	pages   []*page
	current int
	meter   *fpdf.Fpdf
}

func newDocument() *document {
	return &document{meter: fpdf.New("P", "pt", "A4", "")}
}

func (d *document) pageCount() int { return len(d.pages) }

// newPageAtEnd appends a page and makes it current.
func (d *document) newPageAtEnd() {
	d.pages = append(d.pages, &page{})
	d.current = len(d.pages) - 1
}

// insertPageAt inserts a blank page at index, shifting every page at or
// after index up by one, and makes the new page current. Page indices
// recorded by callers before this point are NOT adjusted here; renumbering
// them is the caller's responsibility.
func (d *document) insertPageAt(index int) error {
	if index < 0 || index > len(d.pages) {
		return fmt.Errorf("insert page at %d: index out of range (0..%d)", index, len(d.pages))
	}
	d.pages = append(d.pages, nil)
	copy(d.pages[index+1:], d.pages[index:])
	d.pages[index] = &page{}
	d.current = index
	return nil
}

func (d *document) currentPage() (*page, error) {
	return d.page(d.current)
}

func (d *document) page(index int) (*page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page %d: index out of range (document has %d pages)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// appendTo records a draw operation on an arbitrary page. Used by the folio
// pass, which writes page numbers onto pages other than the current one.
func (d *document) appendTo(index int, op drawOp) error {
	pg, err := d.page(index)
	if err != nil {
		return err
	}
	pg.ops = append(pg.ops, op)
	return nil
}

// textWidth measures the rendered width of text and returns it as a
// fraction of the page width, so it composes directly with placement
// fractions.
func (d *document) textWidth(text, style string, size float64) float64 {
	d.meter.SetFont(fontFamily, style, size)
	return d.meter.GetStringWidth(text) / pageWidth
}

// save replays every recorded operation into the PDF backend, in page
// order, and writes the result to path. Nothing touches the filesystem
// before this point.
func (d *document) save(path string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	for _, pg := range d.pages {
		pdf.AddPage()
		for _, op := range pg.ops {
			op.draw(pdf)
		}
	}
	if pdf.Err() {
		return fmt.Errorf("render pdf: %w", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
