package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/types"
)

func TestGetObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		format  types.DocumentFormat
		want    string
		wantErr bool
	}{
		{name: "prefixed pdf", prefix: "invoices", format: types.DocumentFormatPDF, want: "invoices/INV-1.pdf"},
		{name: "slashes trimmed", prefix: "/invoices/", format: types.DocumentFormatDOCX, want: "invoices/INV-1.docx"},
		{name: "no prefix", format: types.DocumentFormatPDF, want: "INV-1.pdf"},
		{name: "unknown format", format: types.DocumentFormat("html"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &s3ServiceImpl{config: &config.S3Config{KeyPrefix: tt.prefix}}
			got, err := s.getObjectKey("INV-1", tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresignExpiryDefault(t *testing.T) {
	s := &s3ServiceImpl{config: &config.S3Config{}}
	assert.Equal(t, defaultPresignExpiryDuration, s.presignExpiry())
}

func TestNewServiceDisabled(t *testing.T) {
	svc, err := NewService(&config.Configuration{}, nil)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestDocumentContentType(t *testing.T) {
	pdf := NewInvoiceDocument("INV-1", types.DocumentFormatPDF, []byte("%PDF-1.3\n%\xe2\xe3\xcf\xd3\n"))
	assert.Equal(t, "application/pdf", pdf.ContentType())

	empty := NewInvoiceDocument("INV-1", types.DocumentFormatDOCX, nil)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", empty.ContentType())
}
