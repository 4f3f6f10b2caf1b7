package document

import (
	"bytes"
	"context"

	"github.com/go-pdf/fpdf"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	pdfFont        = "Helvetica"
	pdfLabelWidth  = 55.0
	pdfLineHeight  = 8.0
	pdfTitleHeight = 14.0
)

type pdfRenderer struct {
	compress bool
}

// NewPDFRenderer renders A4 portrait invoices with the core Helvetica font
func NewPDFRenderer() Renderer {
	return &pdfRenderer{compress: true}
}

func (r *pdfRenderer) Format() types.DocumentFormat {
	return types.DocumentFormatPDF
}

func (r *pdfRenderer) Render(ctx context.Context, data *InvoiceData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle("Invoice "+data.InvoiceNumber, true)
	pdf.SetCreator(data.BusinessName, true)
	pdf.SetCreationDate(data.IssueDate.Time())
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// core fonts are cp1252, names may carry accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", 24)
	pdf.CellFormat(0, pdfTitleHeight, "INVOICE", "", 1, "L", false, 0, "")
	if data.BusinessName != "" {
		pdf.SetFont(pdfFont, "", 12)
		pdf.CellFormat(0, pdfLineHeight, tr(data.BusinessName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	writeLines(pdf, tr, data.HeaderLines())

	pdf.Ln(4)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(4)

	amounts := data.AmountLines()
	writeLines(pdf, tr, amounts[:len(amounts)-1])

	// balance due stands out
	due := amounts[len(amounts)-1]
	pdf.SetFont(pdfFont, "B", 13)
	pdf.CellFormat(pdfLabelWidth, pdfLineHeight+2, due.Label+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight+2, tr(due.Value), "", 1, "L", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont(pdfFont, "I", 11)
	pdf.CellFormat(0, pdfLineHeight, tr(data.FooterNote), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			WithReportableDetails(map[string]any{"invoice_number": data.InvoiceNumber}).
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

func writeLines(pdf *fpdf.Fpdf, tr func(string) string, lines []Line) {
	for _, l := range lines {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(pdfLabelWidth, pdfLineHeight, l.Label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 12)
		pdf.CellFormat(0, pdfLineHeight, tr(l.Value), "", 1, "L", false, 0, "")
	}
}
