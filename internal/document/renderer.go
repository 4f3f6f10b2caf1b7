package document

import (
	"context"

	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Renderer turns invoice data into one document format
type Renderer interface {
	Render(ctx context.Context, data *InvoiceData) ([]byte, error)
	Format() types.DocumentFormat
}

// Generator renders invoices in any supported format
type Generator interface {
	Render(ctx context.Context, format types.DocumentFormat, data *InvoiceData) ([]byte, error)
}

type generator struct {
	renderers map[types.DocumentFormat]Renderer
}

// NewGenerator returns a generator supporting PDF and DOCX
func NewGenerator() Generator {
	return NewGeneratorWith(NewPDFRenderer(), NewDOCXRenderer())
}

func NewGeneratorWith(renderers ...Renderer) Generator {
	g := &generator{renderers: make(map[types.DocumentFormat]Renderer, len(renderers))}
	for _, r := range renderers {
		g.renderers[r.Format()] = r
	}
	return g
}

func (g *generator) Render(ctx context.Context, format types.DocumentFormat, data *InvoiceData) ([]byte, error) {
	r, ok := g.renderers[format]
	if !ok {
		return nil, ierr.NewErrorf("unsupported document format %q", format).
			WithHint("Supported formats are pdf and docx").
			Mark(ierr.ErrValidation)
	}
	if data == nil {
		return nil, ierr.NewError("invoice data is required").Mark(ierr.ErrValidation)
	}
	return r.Render(ctx, data)
}

// ContentType is the MIME type served for a format
func ContentType(format types.DocumentFormat) string {
	switch format {
	case types.DocumentFormatPDF:
		return "application/pdf"
	case types.DocumentFormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// FileName is the attachment name of an invoice document
func FileName(invoiceNumber string, format types.DocumentFormat) string {
	return invoiceNumber + "." + string(format)
}
