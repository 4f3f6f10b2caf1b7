package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sourcegraph/conc/pool"
	"github.com/tutordesk/tutordesk/internal/api/dto"
	"github.com/tutordesk/tutordesk/internal/cache"
	"github.com/tutordesk/tutordesk/internal/document"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/s3"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	invoiceNumberAttempts = 5
	invoiceNumberRetryGap = 10 * time.Millisecond
	// one goroutine per lookup: assignments, attendance, payments
	invoiceLookupConcurrency = 3
)

type InvoiceService interface {
	// GenerateInvoice computes and stores an invoice for the requested period
	GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error)
	// PreviewInvoice computes an invoice without storing it
	PreviewInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoicePreviewResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	// ExportInvoice renders the invoice as a PDF or DOCX attachment
	ExportInvoice(ctx context.Context, id string, format types.DocumentFormat) (*dto.InvoiceDocument, error)
	// GetInvoiceDocumentURL archives the rendered document when needed and returns a presigned link
	GetInvoiceDocumentURL(ctx context.Context, id string, format types.DocumentFormat) (*dto.InvoiceDocumentResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.StudentRepo.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	result, err := s.compute(ctx, req.StudentID, req.Period(types.Today()))
	if err != nil {
		return nil, err
	}

	inv := invoice.FromResult(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE), "", result)
	if err := s.createWithNumber(ctx, inv); err != nil {
		return nil, err
	}
	inv.StudentName = st.StudentName

	s.Logger.Infow("generated invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"student_id", inv.StudentID,
		"start_date", inv.StartDate.String(),
		"end_date", inv.EndDate.String(),
		"total_amount", inv.TotalAmount,
		"paid_amount", inv.PaidAmount,
		"balance", inv.Balance,
		"status", inv.Status,
	)
	s.invalidateDashboard(ctx)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// createWithNumber assigns a fresh invoice number and stores the invoice,
// drawing a new number when the previous one is already taken
func (s *invoiceService) createWithNumber(ctx context.Context, inv *invoice.Invoice) error {
	prefix := s.Config.Invoice.NumberPrefix
	operation := func() error {
		inv.InvoiceNumber = types.GenerateInvoiceNumber(prefix, inv.CreatedAt)
		if err := inv.Validate(); err != nil {
			return backoff.Permanent(err)
		}
		err := s.InvoiceRepo.Create(ctx, inv)
		if err == nil {
			return nil
		}
		if ierr.IsAlreadyExists(err) {
			s.Logger.Debugw("invoice number taken, retrying", "invoice_number", inv.InvoiceNumber)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(invoiceNumberRetryGap), invoiceNumberAttempts-1),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

func (s *invoiceService) PreviewInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoicePreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.StudentRepo.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	result, err := s.compute(ctx, req.StudentID, req.Period(types.Today()))
	if err != nil {
		return nil, err
	}

	return &dto.InvoicePreviewResponse{
		Result:      result,
		StudentName: st.StudentName,
		Status:      result.Status(),
	}, nil
}

// compute loads the student's fee assignments, attendance and payments
// concurrently and runs the calculator over them. The three reads are not a
// consistent snapshot.
func (s *invoiceService) compute(ctx context.Context, studentID string, period types.DateRange) (*invoice.Result, error) {
	if err := invoice.ValidatePeriod(period); err != nil {
		return nil, err
	}

	var (
		assignments []*studentsubject.StudentSubject
		records     []*attendance.Attendance
		payments    []*payment.Payment
	)

	p := pool.New().
		WithMaxGoroutines(invoiceLookupConcurrency).
		WithContext(ctx).
		WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		assignments, err = s.StudentSubjectRepo.ListByStudent(ctx, studentID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		records, err = s.AttendanceRepo.ListByStudent(ctx, studentID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		payments, err = s.PaymentRepo.ListByStudent(ctx, studentID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	result, err := invoice.ComputeInvoice(studentID, period, invoice.NewFeeSchedule(assignments), records, payments)
	if err != nil {
		return nil, err
	}

	if len(result.UnpricedSubjects) > 0 {
		s.Logger.Debugw("billing sessions without a fee assignment at zero",
			"student_id", studentID,
			"subject_ids", result.UnpricedSubjects,
		)
	}
	return result, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, &dto.InvoiceResponse{Invoice: inv})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.Cache != nil {
		s.Cache.DeleteByPrefix(ctx, cache.GenerateKey(cache.PrefixInvoiceDocument, id))
	}
	s.invalidateDashboard(ctx)

	s.Logger.Infow("deleted invoice", "invoice_id", id)
	return nil
}

func (s *invoiceService) ExportInvoice(ctx context.Context, id string, format types.DocumentFormat) (*dto.InvoiceDocument, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.render(ctx, inv, format)
	if err != nil {
		return nil, err
	}

	if s.S3 != nil {
		doc := s3.NewInvoiceDocument(inv.InvoiceNumber, format, data)
		if err := s.S3.UploadDocument(ctx, doc); err != nil {
			// the download still succeeds without the archive copy
			s.Logger.Errorw("failed to archive invoice document",
				"invoice_id", inv.ID,
				"format", format,
				"error", err,
			)
		}
	}

	return &dto.InvoiceDocument{
		FileName:    document.FileName(inv.InvoiceNumber, format),
		ContentType: document.ContentType(format),
		Data:        data,
	}, nil
}

func (s *invoiceService) GetInvoiceDocumentURL(ctx context.Context, id string, format types.DocumentFormat) (*dto.InvoiceDocumentResponse, error) {
	if s.S3 == nil {
		return nil, ierr.NewError("document archive is disabled").
			WithHint("Invoice document links are not available").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.S3.Exists(ctx, inv.InvoiceNumber, format)
	if err != nil {
		return nil, err
	}
	if !exists {
		data, err := s.render(ctx, inv, format)
		if err != nil {
			return nil, err
		}
		if err := s.S3.UploadDocument(ctx, s3.NewInvoiceDocument(inv.InvoiceNumber, format, data)); err != nil {
			return nil, err
		}
	}

	url, err := s.S3.GetPresignedUrl(ctx, inv.InvoiceNumber, format)
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceDocumentResponse{
		InvoiceNumber: inv.InvoiceNumber,
		Format:        format,
		URL:           url,
	}, nil
}

// render returns the document bytes, from cache when the invoice was rendered before.
// Stored invoices never change so cached documents stay valid until deletion.
func (s *invoiceService) render(ctx context.Context, inv *invoice.Invoice, format types.DocumentFormat) ([]byte, error) {
	key := cache.GenerateKey(cache.PrefixInvoiceDocument, inv.ID, format)
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, key); ok {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
		}
	}

	data := document.NewInvoiceData(inv, s.Config.Invoice, types.DateOf(inv.CreatedAt))
	out, err := s.DocumentGenerator.Render(ctx, format, data)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("rendered invoice document",
		"invoice_id", inv.ID,
		"format", format,
		"size", len(out),
	)

	if s.Cache != nil {
		s.Cache.Set(ctx, key, out, 0)
	}
	return out, nil
}
