package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// ContentType is the MIME type of rendered documents.
const ContentType = "application/pdf"

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	pageMargin = 15.0
)

// The core fonts are cp1252; the arrow has no glyph there.
var glyphReplacer = strings.NewReplacer("→", "->")

// Renderer writes documents as A4 PDFs.
type Renderer struct {
	// Author is stored in the PDF metadata
	Author string

	// now stamps the PDF creation date; fixed in tests for stable output
	now func() time.Time
}

// NewRenderer creates a Renderer.
func NewRenderer(author string) *Renderer {
	return &Renderer{Author: author, now: time.Now}
}

// RenderQuote writes doc to w, one page per option.
func (r *Renderer) RenderQuote(w io.Writer, doc QuoteDocument) error {
	p, tr := r.newPDF(doc.Title)

	for _, opt := range doc.Options {
		p.AddPage()
		r.header(p, tr, doc.Title, doc.IssuedOn)
		if opt.Title != "" {
			p.SetFont(fontFamily, "B", 12)
			p.CellFormat(0, lineHeight+2, tr(opt.Title), "", 1, "L", false, 0, "")
		}
		r.option(p, tr, opt)
		r.footer(p, tr, doc.Seller)
	}
	if len(doc.Options) == 0 {
		p.AddPage()
		r.header(p, tr, doc.Title, doc.IssuedOn)
		r.footer(p, tr, doc.Seller)
	}

	return output(p, w)
}

// RenderBooking writes doc to w on a single page.
func (r *Renderer) RenderBooking(w io.Writer, doc BookingDocument) error {
	p, tr := r.newPDF(doc.Title)
	p.AddPage()
	r.header(p, tr, doc.Title, doc.IssuedOn)

	p.SetFont(fontFamily, "B", 12)
	p.CellFormat(0, lineHeight+2, tr("Codigo de reserva: "+doc.PNR), "", 1, "L", false, 0, "")
	if doc.OrderID != "" {
		r.text(p, tr, "Orden: "+doc.OrderID)
	}

	r.section(p, tr, "Pasajeros")
	for _, pax := range doc.Passengers {
		r.text(p, tr, pax)
	}
	if doc.Contact != "" {
		r.text(p, tr, "Contacto: "+doc.Contact)
	}

	r.option(p, tr, doc.Option)
	r.footer(p, tr, doc.Seller)

	return output(p, w)
}

// Quote renders doc into memory.
func (r *Renderer) Quote(doc QuoteDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderQuote(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Booking renders doc into memory.
func (r *Renderer) Booking(doc BookingDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderBooking(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newPDF(title string) (*fpdf.Fpdf, func(string) string) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, pageMargin+10)
	p.SetTitle(title, true)
	p.SetAuthor(r.Author, true)
	p.SetCatalogSort(true)
	p.SetCreationDate(r.now())
	p.SetModificationDate(r.now())

	cp := p.UnicodeTranslatorFromDescriptor("")
	return p, func(s string) string { return cp(glyphReplacer.Replace(s)) }
}

func (r *Renderer) header(p *fpdf.Fpdf, tr func(string) string, title, issuedOn string) {
	p.SetFont(fontFamily, "B", 16)
	p.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	p.SetFont(fontFamily, "", 9)
	p.CellFormat(0, lineHeight, tr("Fecha de emision: "+issuedOn), "", 1, "L", false, 0, "")
	p.Ln(2)
}

func (r *Renderer) option(p *fpdf.Fpdf, tr func(string) string, opt OptionBlock) {
	if opt.Carrier != "" {
		r.text(p, tr, "Aerolinea: "+opt.Carrier)
	}

	r.section(p, tr, "Itinerario")
	for _, line := range opt.Itinerary {
		p.SetFont(fontFamily, "B", 10)
		p.CellFormat(22, lineHeight, tr(line.Date), "", 0, "L", false, 0, "")
		p.SetFont(fontFamily, "", 10)
		p.CellFormat(0, lineHeight, tr(line.Route+"   "+line.Times), "", 1, "L", false, 0, "")
		detail := strings.TrimSpace(strings.Join([]string{line.Flights, line.Stops}, "  "))
		if detail != "" {
			p.SetFont(fontFamily, "I", 9)
			p.CellFormat(22, lineHeight, "", "", 0, "L", false, 0, "")
			p.CellFormat(0, lineHeight, tr(detail), "", 1, "L", false, 0, "")
		}
	}

	r.section(p, tr, "Equipaje")
	for _, line := range opt.Baggage {
		r.text(p, tr, line)
	}

	r.section(p, tr, "Tarifa")
	for _, line := range opt.PriceLines {
		r.text(p, tr, line)
	}
	p.SetFont(fontFamily, "B", 11)
	p.CellFormat(0, lineHeight+1, tr(opt.Total), "", 1, "L", false, 0, "")

	r.section(p, tr, "Condiciones")
	for _, line := range opt.Penalties {
		r.text(p, tr, line)
	}
}

func (r *Renderer) section(p *fpdf.Fpdf, tr func(string) string, name string) {
	p.Ln(2)
	p.SetFont(fontFamily, "B", 11)
	p.SetFillColor(230, 230, 230)
	p.CellFormat(0, lineHeight+1, tr(name), "", 1, "L", true, 0, "")
}

func (r *Renderer) text(p *fpdf.Fpdf, tr func(string) string, s string) {
	p.SetFont(fontFamily, "", 10)
	p.MultiCell(0, lineHeight, tr(s), "", "L", false)
}

func (r *Renderer) footer(p *fpdf.Fpdf, tr func(string) string, seller domain.Seller) {
	p.Ln(4)
	p.SetFont(fontFamily, "", 9)
	contact := seller.Name
	for _, v := range []string{seller.Email, seller.Phone} {
		if v != "" {
			contact += " | " + v
		}
	}
	p.MultiCell(0, lineHeight-1, tr("Atendido por: "+contact), "T", "L", false)
}

func output(p *fpdf.Fpdf, w io.Writer) error {
	if err := p.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
