package s3

import (
	"github.com/h2non/filetype"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Document is a rendered invoice file
type Document struct {
	ID     string               `json:"id"`
	Data   []byte               `json:"data"`
	Format types.DocumentFormat `json:"format"`
}

func NewInvoiceDocument(invoiceNumber string, format types.DocumentFormat, data []byte) *Document {
	return &Document{
		ID:     invoiceNumber,
		Data:   data,
		Format: format,
	}
}

// ContentType sniffs the payload and falls back to the declared format
func (d *Document) ContentType() string {
	if kind, err := filetype.Match(d.Data); err == nil && kind != filetype.Unknown {
		// a docx is a zip, prefer the declared office type when the sniffer only sees the container
		if kind.Extension != "zip" || d.Format != types.DocumentFormatDOCX {
			return kind.MIME.Value
		}
	}
	switch d.Format {
	case types.DocumentFormatPDF:
		return "application/pdf"
	case types.DocumentFormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
