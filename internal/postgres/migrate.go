package postgres

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations
type Migrator struct {
	m      *migrate.Migrate
	logger *logger.Logger
}

// NewMigrator builds a migrator on the given connection. The connection stays owned by the caller.
func NewMigrator(db *DB, log *logger.Logger) (*Migrator, error) {
	driver, err := migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create migration driver").
			Mark(ierr.ErrDatabase)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load embedded migrations").
			Mark(ierr.ErrSystem)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create migrate instance").
			Mark(ierr.ErrDatabase)
	}

	return &Migrator{m: m, logger: log}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	return mg.run("up", mg.m.Up)
}

// Down reverts every applied migration
func (mg *Migrator) Down() error {
	return mg.run("down", mg.m.Down)
}

// Steps applies n migrations forward, or reverts -n when n is negative
func (mg *Migrator) Steps(n int) error {
	return mg.run("steps", func() error { return mg.m.Steps(n) })
}

// Version returns the current schema version and whether it is dirty
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) run(direction string, fn func() error) error {
	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Infow("schema already up to date", "direction", direction)
		return nil
	}
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Migration %s failed", direction).
			Mark(ierr.ErrDatabase)
	}

	v, _, _ := mg.Version()
	mg.logger.Infow("migrations applied", "direction", direction, "version", v)
	return nil
}
