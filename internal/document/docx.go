package document

import (
	"bytes"
	"context"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

type docxRenderer struct{}

// NewDOCXRenderer renders invoices as Word documents
func NewDOCXRenderer() Renderer {
	return &docxRenderer{}
}

func (r *docxRenderer) Format() types.DocumentFormat {
	return types.DocumentFormatDOCX
}

func (r *docxRenderer) Render(ctx context.Context, data *InvoiceData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, renderError(err, data)
	}

	if _, err := doc.AddHeading("INVOICE", 0); err != nil {
		return nil, renderError(err, data)
	}
	if data.BusinessName != "" {
		doc.AddParagraph(data.BusinessName)
	}

	doc.AddEmptyParagraph()
	addLabelledLines(doc, data.HeaderLines())
	doc.AddEmptyParagraph()
	addLabelledLines(doc, data.AmountLines())
	doc.AddEmptyParagraph()
	doc.AddEmptyParagraph().AddText(data.FooterNote).Italic(true)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, renderError(err, data)
	}
	return buf.Bytes(), nil
}

// addLabelledLines writes one "Label: value" paragraph per line with the label in bold
func addLabelledLines(doc *docx.RootDoc, lines []Line) {
	for _, line := range lines {
		p := doc.AddEmptyParagraph()
		p.AddText(line.Label + ": ").Bold(true)
		p.AddText(line.Value)
	}
}

func renderError(err error, data *InvoiceData) error {
	return ierr.WithError(err).
		WithHint("Failed to render invoice document").
		WithReportableDetails(map[string]any{"invoice_number": data.InvoiceNumber}).
		Mark(ierr.ErrSystem)
}
