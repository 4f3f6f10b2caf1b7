package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/tutordesk/tutordesk/internal/api/v1"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/rest/middleware"
	"github.com/tutordesk/tutordesk/internal/sentry"
	"github.com/tutordesk/tutordesk/internal/types"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Student    *v1.StudentHandler
	Subject    *v1.SubjectHandler
	Attendance *v1.AttendanceHandler
	Payment    *v1.PaymentHandler
	Invoice    *v1.InvoiceHandler
	Dashboard  *v1.DashboardHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	if cfg.Logging.Level != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentrySvc),
		middleware.RateLimitMiddleware(cfg),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	students := router.Group("/students")
	{
		students.POST("", handlers.Student.CreateStudent)
		students.GET("", handlers.Student.ListStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)

		students.GET("/:id/subjects", handlers.Student.ListSubjects)
		students.POST("/:id/subjects", handlers.Student.AssignSubject)
		students.DELETE("/:id/subjects/:subject_id", handlers.Student.RemoveSubject)
	}

	subjects := router.Group("/subjects")
	{
		subjects.POST("", handlers.Subject.CreateSubject)
		subjects.GET("", handlers.Subject.ListSubjects)
		subjects.GET("/:id", handlers.Subject.GetSubject)
		subjects.PUT("/:id", handlers.Subject.UpdateSubject)
		subjects.DELETE("/:id", handlers.Subject.DeleteSubject)
	}

	attendance := router.Group("/attendance")
	{
		attendance.POST("", handlers.Attendance.MarkAttendance)
		attendance.POST("/bulk", handlers.Attendance.BulkMarkAttendance)
		attendance.GET("", handlers.Attendance.ListAttendance)
		attendance.GET("/:id", handlers.Attendance.GetAttendance)
		attendance.DELETE("/:id", handlers.Attendance.DeleteAttendance)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.CreatePayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.DELETE("/:id", handlers.Payment.DeletePayment)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.GenerateInvoice)
		invoices.POST("/preview", handlers.Invoice.PreviewInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.GET("/:id/pdf", handlers.Invoice.GetInvoicePDF)
		invoices.GET("/:id/docx", handlers.Invoice.GetInvoiceDOCX)
	}

	router.GET("/dashboard", handlers.Dashboard.GetSummary)
}
