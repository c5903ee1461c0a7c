package wellness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ WellnessRepo = (*PostgresWellnessRepo)(nil)

// WellnessRepo persists wellness entries. Mutations carry the same
// owner-scoped compound filter as appointments.
type WellnessRepo interface {
	GetEntries(ctx context.Context) ([]types.WellnessEntry, error)
	GetEntriesByUser(ctx context.Context, userID string) ([]types.WellnessEntry, error)
	GetEntry(ctx context.Context, id string) (*types.WellnessEntry, error)
	CreateEntry(ctx context.Context, ownerID string, params *types.CreateWellnessEntryRequest) (*types.WellnessEntry, error)
	UpdateEntry(ctx context.Context, id, ownerID string, params *types.UpdateWellnessEntryRequest) (*types.WellnessEntry, error)
	DeleteEntry(ctx context.Context, id, ownerID string) error
}

type PostgresWellnessRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresWellnessRepo(db DB, logger *slog.Logger) *PostgresWellnessRepo {
	return &PostgresWellnessRepo{
		logger: logger,
		db:     db,
	}
}

const entryColumns = "id, user_id, mood, stress_level, note, created_at, updated_at"

func scanEntry(row pgx.Row) (*types.WellnessEntry, error) {
	var e types.WellnessEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Mood, &e.StressLevel, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wellness entry row: %w", err)
	}
	return &e, nil
}

func (r *PostgresWellnessRepo) GetEntries(ctx context.Context) ([]types.WellnessEntry, error) {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "GetEntries", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		"SELECT "+entryColumns+" FROM wellness_entries ORDER BY created_at DESC")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list wellness entries: %w", err)
	}
	defer rows.Close()

	entries := make([]types.WellnessEntry, 0)
	for rows.Next() {
		var e types.WellnessEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.StressLevel, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan wellness entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("wellness entry rows iteration failed: %w", err)
	}
	return entries, nil
}

func (r *PostgresWellnessRepo) GetEntriesByUser(ctx context.Context, userID string) ([]types.WellnessEntry, error) {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "GetEntriesByUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		"SELECT "+entryColumns+" FROM wellness_entries WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list wellness entries for user: %w", err)
	}
	defer rows.Close()

	entries := make([]types.WellnessEntry, 0)
	for rows.Next() {
		var e types.WellnessEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.StressLevel, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan wellness entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("wellness entry rows iteration failed: %w", err)
	}
	return entries, nil
}

func (r *PostgresWellnessRepo) GetEntry(ctx context.Context, id string) (*types.WellnessEntry, error) {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "GetEntry", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	row := r.db.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM wellness_entries WHERE id = $1", id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "entry not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to get wellness entry: %w", err)
	}
	return entry, nil
}

func (r *PostgresWellnessRepo) CreateEntry(ctx context.Context, ownerID string, params *types.CreateWellnessEntryRequest) (*types.WellnessEntry, error) {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "CreateEntry", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	note := ""
	if params.Note != nil {
		note = *params.Note
	}

	query := `
        INSERT INTO wellness_entries (user_id, mood, stress_level, note)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRow(ctx, query, ownerID, params.Mood, params.StressLevel, note))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("failed to create wellness entry: %w", err)
	}

	r.logger.DebugContext(ctx, "Wellness entry created",
		slog.String("entryID", entry.ID), slog.String("ownerID", ownerID))
	return entry, nil
}

func (r *PostgresWellnessRepo) UpdateEntry(ctx context.Context, id, ownerID string, params *types.UpdateWellnessEntryRequest) (*types.WellnessEntry, error) {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "UpdateEntry", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Mood != nil {
		setClauses = append(setClauses, fmt.Sprintf("mood = $%d", argID))
		args = append(args, *params.Mood)
		argID++
	}
	if params.StressLevel != nil {
		setClauses = append(setClauses, fmt.Sprintf("stress_level = $%d", argID))
		args = append(args, *params.StressLevel)
		argID++
	}
	if params.Note != nil {
		setClauses = append(setClauses, fmt.Sprintf("note = $%d", argID))
		args = append(args, *params.Note)
		argID++
	}

	if len(setClauses) == 0 {
		row := r.db.QueryRow(ctx,
			"SELECT "+entryColumns+" FROM wellness_entries WHERE id = $1 AND user_id = $2", id, ownerID)
		return scanEntry(row)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE wellness_entries SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, argID+1, entryColumns)

	entry, err := scanEntry(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "no owned row matched")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("failed to update wellness entry: %w", err)
	}
	return entry, nil
}

func (r *PostgresWellnessRepo) DeleteEntry(ctx context.Context, id, ownerID string) error {
	ctx, span := otel.Tracer("WellnessRepo").Start(ctx, "DeleteEntry", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "wellness_entries"),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx,
		"DELETE FROM wellness_entries WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("failed to delete wellness entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Ok, "no owned row matched")
		return api.ErrNotFound
	}

	r.logger.DebugContext(ctx, "Wellness entry deleted",
		slog.String("entryID", id), slog.String("ownerID", ownerID))
	return nil
}
