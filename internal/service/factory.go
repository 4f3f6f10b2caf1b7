package service

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/cache"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/document"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	"github.com/tutordesk/tutordesk/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger            *logger.Logger
	Config            *config.Configuration
	DB                postgres.IClient
	Cache             cache.Cache
	DocumentGenerator document.Generator
	// S3 is nil when document archiving is disabled
	S3 s3.Service

	// Repositories
	StudentRepo        student.Repository
	SubjectRepo        subject.Repository
	StudentSubjectRepo studentsubject.Repository
	AttendanceRepo     attendance.Repository
	PaymentRepo        payment.Repository
	InvoiceRepo        invoice.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	documentGenerator document.Generator,
	s3Service s3.Service,
	studentRepo student.Repository,
	subjectRepo subject.Repository,
	studentSubjectRepo studentsubject.Repository,
	attendanceRepo attendance.Repository,
	paymentRepo payment.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		DB:                 db,
		Cache:              cache,
		DocumentGenerator:  documentGenerator,
		S3:                 s3Service,
		StudentRepo:        studentRepo,
		SubjectRepo:        subjectRepo,
		StudentSubjectRepo: studentSubjectRepo,
		AttendanceRepo:     attendanceRepo,
		PaymentRepo:        paymentRepo,
		InvoiceRepo:        invoiceRepo,
	}
}

// invalidateDashboard drops the cached summary after writes that change it
func (p ServiceParams) invalidateDashboard(ctx context.Context) {
	if p.Cache != nil {
		p.Cache.DeleteByPrefix(ctx, cache.PrefixDashboard)
	}
}
