package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tutordesk/tutordesk/internal/api"
	v1 "github.com/tutordesk/tutordesk/internal/api/v1"
	"github.com/tutordesk/tutordesk/internal/cache"
	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/document"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/repository"
	"github.com/tutordesk/tutordesk/internal/s3"
	"github.com/tutordesk/tutordesk/internal/sentry"
	"github.com/tutordesk/tutordesk/internal/service"
	"github.com/tutordesk/tutordesk/internal/types"
	"github.com/tutordesk/tutordesk/internal/validator"
	"go.uber.org/fx"
)

// @title Tutordesk API
// @version 1.0
// @description Back office API for a tutoring business
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Storage
			repository.NewStore,
			repository.NewTransactor,

			// Documents
			document.NewGenerator,
			s3.NewService,

			// Repositories
			repository.NewStudentRepository,
			repository.NewSubjectRepository,
			repository.NewStudentSubjectRepository,
			repository.NewAttendanceRepository,
			repository.NewPaymentRepository,
			repository.NewInvoiceRepository,
		),
	)

	// Monitoring
	opts = append(opts, sentry.Module())

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewStudentService,
			service.NewSubjectService,
			service.NewStudentSubjectService,
			service.NewAttendanceService,
			service.NewPaymentService,
			service.NewInvoiceService,
			service.NewDashboardService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	store *repository.Store,
	studentService service.StudentService,
	subjectService service.SubjectService,
	studentSubjectService service.StudentSubjectService,
	attendanceService service.AttendanceService,
	paymentService service.PaymentService,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(store, logger),
		Student:    v1.NewStudentHandler(studentService, studentSubjectService, logger),
		Subject:    v1.NewSubjectHandler(subjectService, logger),
		Attendance: v1.NewAttendanceHandler(attendanceService, logger),
		Payment:    v1.NewPaymentHandler(paymentService, logger),
		Invoice:    v1.NewInvoiceHandler(invoiceService, logger),
		Dashboard:  v1.NewDashboardHandler(dashboardService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentrySvc)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	store *repository.Store,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, store, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	store *repository.Store,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address, "storage", store.Backend)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			if cfg.Server.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
				defer cancel()
			}
			err := srv.Shutdown(ctx)
			store.Close()
			return err
		},
	})
}
