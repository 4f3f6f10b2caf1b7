package supabase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/nedpals/supabase-go"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/shopspring/decimal"
	"github.com/tutordesk/tutordesk/internal/config"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/logger"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgrstNoRows           = "PGRST116"

	// sumPageSize matches the default max-rows of a Supabase project
	sumPageSize = 1000
)

// Client talks to the Supabase PostgREST endpoint with the service key
type Client struct {
	*supabase.Client
	logger *logger.Logger
}

func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	if cfg.Supabase.BaseURL == "" || cfg.Supabase.ServiceKey == "" {
		return nil, ierr.NewError("supabase is not configured").
			WithHint("supabase.base_url and supabase.service_key are required").
			Mark(ierr.ErrValidation)
	}

	client := supabase.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.ServiceKey)
	if client == nil {
		return nil, ierr.NewError("failed to create supabase client").Mark(ierr.ErrSystem)
	}

	log.Infow("using supabase storage backend", "base_url", cfg.Supabase.BaseURL)
	return &Client{Client: client, logger: log}, nil
}

// WithTx runs fn directly. PostgREST has no multi-request transactions so
// each statement commits on its own.
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Ping issues a cheap read to check the endpoint is reachable
func (c *Client) Ping(ctx context.Context) error {
	var rows []map[string]any
	if err := c.DB.From("subjects").Select("id").Limit(1).ExecuteWithContext(ctx, &rows); err != nil {
		return wrapError(err, "Database", nil)
	}
	return nil
}

// count returns the exact number of rows in table matching where
func (c *Client) count(ctx context.Context, table string, where func(q *postgrest.FilterRequestBuilder)) (int, error) {
	q := c.DB.From(table).Select("id")
	if where != nil {
		where(&q.FilterRequestBuilder)
	}

	var n int
	if err := q.Count().ExecuteWithContext(ctx, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// sumColumn totals a numeric column over the rows matching where. Aggregates
// are disabled on Supabase by default so the column is paged through instead.
func (c *Client) sumColumn(ctx context.Context, table, column string, where func(q *postgrest.FilterRequestBuilder)) (decimal.Decimal, error) {
	sum := decimal.Zero
	for offset := 0; ; offset += sumPageSize {
		q := c.DB.From(table).Select(column)
		if where != nil {
			where(&q.FilterRequestBuilder)
		}
		orderBy(q, "id.asc").LimitWithOffset(sumPageSize, offset)

		var rows []map[string]decimal.Decimal
		if err := q.ExecuteWithContext(ctx, &rows); err != nil {
			return decimal.Zero, err
		}
		for _, row := range rows {
			sum = sum.Add(row[column])
		}
		if len(rows) < sumPageSize {
			return sum, nil
		}
	}
}

// orderBy sets an order made of several "column.direction" terms. The
// builder keeps a single order key so the terms are joined up front.
func orderBy(q *postgrest.SelectRequestBuilder, terms ...string) *postgrest.SelectRequestBuilder {
	joined := strings.Join(terms, ",")
	i := strings.LastIndex(joined, ".")
	return q.OrderBy(joined[:i], joined[i+1:])
}

// anyOf adds an or=(...) filter from "column.operator.value" conditions
func anyOf(q *postgrest.FilterRequestBuilder, conditions ...string) {
	joined := "(" + strings.Join(conditions, ",") + ")"
	i := strings.Index(joined, ".")
	q.Filter("or", joined[:i], joined[i+1:])
}

// containsPattern quotes q as an ilike operand matching anywhere in the
// column. The client writes filter values into the raw query unescaped,
// so the user text is percent-encoded here.
func containsPattern(q string) string {
	q = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(strings.TrimSpace(q))
	return "%22*" + strings.ReplaceAll(url.QueryEscape(q), "+", "%20") + "*%22"
}

// wrapError marks PostgREST failures by the postgres or PostgREST error code
func wrapError(err error, entity string, details map[string]any) error {
	if err == nil {
		return nil
	}

	var reqErr *postgrest.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Code {
		case pgUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrAlreadyExists)
		case pgForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s references a record that does not exist", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		case pgCheckViolation, pgInvalidText:
			return ierr.WithError(err).
				WithHintf("%s has invalid values", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		case pgrstNoRows:
			return ierr.WithError(err).
				WithHintf("%s not found", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrNotFound)
		}
	}

	return ierr.WithError(err).
		WithHintf("Failed to access %s", entity).
		WithReportableDetails(details).
		Mark(ierr.ErrDatabase)
}

func notFound(entity string, details map[string]any) error {
	return ierr.NewErrorf("%s not found", entity).
		WithHintf("%s not found", entity).
		WithReportableDetails(details).
		Mark(ierr.ErrNotFound)
}
