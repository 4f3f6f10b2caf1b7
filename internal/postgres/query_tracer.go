package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/tutordesk/tutordesk/internal/logger"
)

// queryTrace times one statement and logs it when done
type queryTrace struct {
	logger *logger.Logger
	query  string
	args   interface{}
	start  time.Time
	txID   string
}

func startTrace(l *logger.Logger, query string, args interface{}, txID string) *queryTrace {
	return &queryTrace{logger: l, query: query, args: args, start: time.Now(), txID: txID}
}

func (t *queryTrace) done(ctx context.Context, err error) {
	fields := []interface{}{
		"duration_ms", time.Since(t.start).Milliseconds(),
		"query", t.query,
	}
	if t.txID != "" {
		fields = append(fields, "tx_id", t.txID)
	}
	log := t.logger.WithContext(ctx)

	// no rows is an expected outcome for lookups
	if err != nil && err != sql.ErrNoRows {
		fields = append(fields, "args", t.args, "error", err.Error())
		log.Errorw("database query failed", fields...)
		return
	}
	log.Debugw("database query completed", fields...)
}

// TracedQuerier logs every statement run through the wrapped Querier
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, l *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{Querier: q, logger: l, txID: txID}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	trace := startTrace(tq.logger, query, args, tq.txID)
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	trace.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	trace := startTrace(tq.logger, query, arg, tq.txID)
	result, err := tq.Querier.NamedExecContext(ctx, query, arg)
	trace.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace := startTrace(tq.logger, query, args, tq.txID)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	trace.done(ctx, err)
	return err
}

func (tq *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace := startTrace(tq.logger, query, args, tq.txID)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	trace.done(ctx, err)
	return err
}
