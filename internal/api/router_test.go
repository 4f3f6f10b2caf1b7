package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/stretchr/testify/suite"
	v1 "github.com/tutordesk/tutordesk/internal/api/v1"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/document"
	"github.com/tutordesk/tutordesk/internal/sentry"
	"github.com/tutordesk/tutordesk/internal/service"
	"github.com/tutordesk/tutordesk/internal/testutil"
	"github.com/tutordesk/tutordesk/internal/types"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.router = s.newRouter(s.GetConfig())
}

func (s *RouterSuite) newRouter(cfg *config.Configuration) *gin.Engine {
	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		cfg,
		s.GetDB(),
		s.GetCache(),
		document.NewGenerator(),
		nil,
		stores.StudentRepo,
		stores.SubjectRepo,
		stores.StudentSubjectRepo,
		stores.AttendanceRepo,
		stores.PaymentRepo,
		stores.InvoiceRepo,
	)

	log := s.GetLogger()
	handlers := Handlers{
		Health:     v1.NewHealthHandler(nil, log),
		Student:    v1.NewStudentHandler(service.NewStudentService(params), service.NewStudentSubjectService(params), log),
		Subject:    v1.NewSubjectHandler(service.NewSubjectService(params), log),
		Attendance: v1.NewAttendanceHandler(service.NewAttendanceService(params), log),
		Payment:    v1.NewPaymentHandler(service.NewPaymentService(params), log),
		Invoice:    v1.NewInvoiceHandler(service.NewInvoiceService(params), log),
		Dashboard:  v1.NewDashboardHandler(service.NewDashboardService(params), log),
	}
	return NewRouter(handlers, cfg, log, sentry.NewSentryService(cfg, log))
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// seedInvoice creates the March 2024 example through the API and returns the invoice body
func (s *RouterSuite) seedInvoice() map[string]any {
	w := s.do(http.MethodPost, "/v1/subjects", gin.H{"subject_name": "Maths", "default_fee": "50"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	subjectID := s.decode(w)["id"].(string)

	w = s.do(http.MethodPost, "/v1/students", gin.H{"student_name": "Ana Lima", "subject_ids": []string{subjectID}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	studentID := s.decode(w)["id"].(string)

	for _, date := range []string{"2024-03-05", "2024-03-12", "2024-03-19"} {
		w = s.do(http.MethodPost, "/v1/attendance", gin.H{
			"student_id": studentID,
			"subject_id": subjectID,
			"date":       date,
			"status":     "Present",
		})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/v1/payments", gin.H{"student_id": studentID, "amount": "60", "date": "2024-03-15"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/invoices", gin.H{
		"student_id": studentID,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.decode(w)
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("req-123", w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestGenerateInvoice() {
	inv := s.seedInvoice()

	s.Equal("150", inv["total_amount"])
	s.Equal("60", inv["paid_amount"])
	s.Equal("90", inv["balance"])
	s.Equal(float64(3), inv["session_count"])
	s.Equal("Unpaid", inv["status"])
	s.Equal("2024-03-01", inv["start_date"])
	s.Regexp(`^INV-\d{6}-`, inv["invoice_number"])

	w := s.do(http.MethodGet, "/v1/invoices/"+inv["id"].(string), nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/invoices?status=Unpaid", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)
}

func (s *RouterSuite) TestGenerateInvoiceErrors() {
	w := s.do(http.MethodPost, "/v1/invoices", gin.H{
		"student_id": "stu_missing",
		"start_date": "2024-03-10",
		"end_date":   "2024-03-01",
	})
	s.Equal(http.StatusNotFound, w.Code)

	inv := s.seedInvoice()
	w = s.do(http.MethodPost, "/v1/invoices/preview", gin.H{
		"student_id": inv["student_id"],
		"start_date": "2024-03-10",
		"end_date":   "2024-03-01",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)
	body := s.decode(w)
	s.Equal(false, body["success"])
	s.Equal("start_date must be on or before end_date", body["error"].(map[string]any)["message"])

	w = s.do(http.MethodPost, "/v1/invoices", gin.H{"student_id": inv["student_id"], "start_date": "03/01/2024"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestExportInvoice() {
	inv := s.seedInvoice()
	id := inv["id"].(string)
	number := inv["invoice_number"].(string)

	tests := []struct {
		path        string
		contentType string
		kind        string
		ext         string
	}{
		{path: "/pdf", contentType: "application/pdf", kind: "pdf", ext: "pdf"},
		{
			path:        "/docx",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			kind:        "zip",
			ext:         "docx",
		},
	}

	for _, tt := range tests {
		s.Run(tt.ext, func() {
			w := s.do(http.MethodGet, "/v1/invoices/"+id+tt.path, nil)
			s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
			s.Equal(tt.contentType, w.Header().Get("Content-Type"))
			s.Equal(`attachment; filename="`+number+`.`+tt.ext+`"`, w.Header().Get("Content-Disposition"))
			s.True(filetype.Is(w.Body.Bytes(), tt.kind))
		})
	}

	// archive links need s3
	w := s.do(http.MethodGet, "/v1/invoices/"+id+"/pdf?url=true", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/invoices/inv_missing/pdf", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestListWithDateQueries() {
	s.seedInvoice()

	w := s.do(http.MethodGet, "/v1/attendance?date=2024-03-12", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)

	w = s.do(http.MethodGet, "/v1/attendance?date=12-03-2024", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/payments?start_date=2024-03-01&end_date=2024-03-31", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)

	w = s.do(http.MethodGet, "/v1/payments?start_date=2024-04-01&end_date=2024-03-01", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestStudentLifecycle() {
	w := s.do(http.MethodPost, "/v1/students", gin.H{"student_name": ""})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/students", gin.H{"student_name": "Bruno"})
	s.Require().Equal(http.StatusCreated, w.Code)
	id := s.decode(w)["id"].(string)

	w = s.do(http.MethodPut, "/v1/students/"+id, gin.H{"grade": "7"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("7", s.decode(w)["grade"])

	w = s.do(http.MethodGet, "/v1/students?search=bru", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)

	w = s.do(http.MethodGet, "/v1/dashboard", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(float64(1), s.decode(w)["total_students"])

	w = s.do(http.MethodDelete, "/v1/students/"+id, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/students/"+id, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestRateLimit() {
	cfg := *s.GetConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1}
	s.router = s.newRouter(&cfg)

	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.True(strings.Contains(w.Body.String(), "Too many requests"))
}
