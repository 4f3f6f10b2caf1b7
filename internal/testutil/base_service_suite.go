package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
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
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	StudentRepo        student.Repository
	SubjectRepo        subject.Repository
	StudentSubjectRepo studentsubject.Repository
	AttendanceRepo     attendance.Repository
	PaymentRepo        payment.Repository
	InvoiceRepo        invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx               context.Context
	stores            Stores
	db                *MockPostgresClient
	cache             cache.Cache
	documentGenerator document.Generator
	logger            *logger.Logger
	config            *config.Configuration
	now               time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.S3.Enabled = false
	cfg.Sentry.Enabled = false

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = types.SetRequestID(context.Background(), types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	subjects := NewInMemorySubjectStore()
	s.stores = Stores{
		StudentRepo:        NewInMemoryStudentStore(),
		SubjectRepo:        subjects,
		StudentSubjectRepo: NewInMemoryStudentSubjectStore(subjects),
		AttendanceRepo:     NewInMemoryAttendanceStore(),
		PaymentRepo:        NewInMemoryPaymentStore(),
		InvoiceRepo:        NewInMemoryInvoiceStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.documentGenerator = NewMockDocumentGenerator(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.StudentRepo.(*InMemoryStudentStore).Clear()
	s.stores.SubjectRepo.(*InMemorySubjectStore).Clear()
	s.stores.StudentSubjectRepo.(*InMemoryStudentSubjectStore).Clear()
	s.stores.AttendanceRepo.(*InMemoryAttendanceStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test transaction runner
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetDocumentGenerator returns the test document generator
func (s *BaseServiceTestSuite) GetDocumentGenerator() document.Generator {
	return s.documentGenerator
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetToday returns the current test date
func (s *BaseServiceTestSuite) GetToday() types.Date {
	return types.DateOf(s.now)
}
