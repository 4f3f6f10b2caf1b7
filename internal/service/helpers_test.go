package service

import (
	"github.com/tutordesk/tutordesk/internal/testutil"
)

// newTestServiceParams wires the suite's in-memory stores into ServiceParams
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:             s.GetLogger(),
		Config:             s.GetConfig(),
		DB:                 s.GetDB(),
		Cache:              s.GetCache(),
		DocumentGenerator:  s.GetDocumentGenerator(),
		StudentRepo:        stores.StudentRepo,
		SubjectRepo:        stores.SubjectRepo,
		StudentSubjectRepo: stores.StudentSubjectRepo,
		AttendanceRepo:     stores.AttendanceRepo,
		PaymentRepo:        stores.PaymentRepo,
		InvoiceRepo:        stores.InvoiceRepo,
	}
}
