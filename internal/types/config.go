package types

import (
	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

type RunMode string

const (
	// ModeLocal runs the API server with developer defaults
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StorageBackend selects the persistence implementation behind the repositories
type StorageBackend string

const (
	// StorageBackendPostgres talks to the database directly over the wire protocol
	StorageBackendPostgres StorageBackend = "postgres"
	// StorageBackendSupabase goes through the Supabase REST (PostgREST) API
	StorageBackendSupabase StorageBackend = "supabase"
)

// DocumentFormat is an export format for invoices
type DocumentFormat string

const (
	DocumentFormatPDF  DocumentFormat = "pdf"
	DocumentFormatDOCX DocumentFormat = "docx"
)

func (f DocumentFormat) Validate() error {
	switch f {
	case DocumentFormatPDF, DocumentFormatDOCX:
		return nil
	}
	return ierr.NewErrorf("unsupported document format %q", f).
		WithHint("Supported formats are pdf and docx").
		Mark(ierr.ErrValidation)
}
