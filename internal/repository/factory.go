package repository

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/domain/attendance"
	"github.com/tutordesk/tutordesk/internal/domain/invoice"
	"github.com/tutordesk/tutordesk/internal/domain/payment"
	"github.com/tutordesk/tutordesk/internal/domain/student"
	"github.com/tutordesk/tutordesk/internal/domain/studentsubject"
	"github.com/tutordesk/tutordesk/internal/domain/subject"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
	postgresRepo "github.com/tutordesk/tutordesk/internal/repository/postgres"
	supabaseRepo "github.com/tutordesk/tutordesk/internal/repository/supabase"
	"github.com/tutordesk/tutordesk/internal/types"
)

// Store holds the connection of the configured storage backend. Exactly one of
// DB and Supabase is set.
type Store struct {
	Backend  types.StorageBackend
	DB       *postgres.DB
	Supabase *supabaseRepo.Client
}

// NewStore opens the backend selected by storage.backend and, for postgres,
// applies pending migrations when postgres.auto_migrate is on
func NewStore(cfg *config.Configuration, log *logger.Logger) (*Store, error) {
	if cfg.Storage.Backend == types.StorageBackendSupabase {
		client, err := supabaseRepo.NewClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{Backend: types.StorageBackendSupabase, Supabase: client}, nil
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.AutoMigrate {
		migrator, err := postgres.NewMigrator(db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{Backend: types.StorageBackendPostgres, DB: db}, nil
}

// WithTx implements postgres.IClient for either backend
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.DB != nil {
		return s.DB.WithTx(ctx, fn)
	}
	return s.Supabase.WithTx(ctx, fn)
}

// Ping checks the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.DB != nil {
		return s.DB.Ping(ctx)
	}
	return s.Supabase.Ping(ctx)
}

// Close releases the postgres pool. The supabase client holds no connections.
func (s *Store) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func NewTransactor(store *Store) postgres.IClient {
	return store
}

func NewStudentRepository(store *Store, logger *logger.Logger) student.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewStudentRepository(store.Supabase, logger)
	}
	return postgresRepo.NewStudentRepository(store.DB, logger)
}

func NewSubjectRepository(store *Store, logger *logger.Logger) subject.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewSubjectRepository(store.Supabase, logger)
	}
	return postgresRepo.NewSubjectRepository(store.DB, logger)
}

func NewStudentSubjectRepository(store *Store, logger *logger.Logger) studentsubject.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewStudentSubjectRepository(store.Supabase, logger)
	}
	return postgresRepo.NewStudentSubjectRepository(store.DB, logger)
}

func NewAttendanceRepository(store *Store, logger *logger.Logger) attendance.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewAttendanceRepository(store.Supabase, logger)
	}
	return postgresRepo.NewAttendanceRepository(store.DB, logger)
}

func NewPaymentRepository(store *Store, logger *logger.Logger) payment.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewPaymentRepository(store.Supabase, logger)
	}
	return postgresRepo.NewPaymentRepository(store.DB, logger)
}

func NewInvoiceRepository(store *Store, logger *logger.Logger) invoice.Repository {
	if store.Supabase != nil {
		return supabaseRepo.NewInvoiceRepository(store.Supabase, logger)
	}
	return postgresRepo.NewInvoiceRepository(store.DB, logger)
}
