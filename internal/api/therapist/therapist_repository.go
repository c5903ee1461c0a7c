package therapist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ TherapistRepo = (*PostgresTherapistRepo)(nil)

// TherapistRepo persists directory entries for therapists.
type TherapistRepo interface {
	GetTherapists(ctx context.Context) ([]types.Therapist, error)
	GetTherapist(ctx context.Context, id string) (*types.Therapist, error)
	CreateTherapist(ctx context.Context, params *types.CreateTherapistRequest) (*types.Therapist, error)
	UpdateTherapist(ctx context.Context, id string, params *types.UpdateTherapistRequest) (*types.Therapist, error)
	DeleteTherapist(ctx context.Context, id string) error
}

type PostgresTherapistRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresTherapistRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresTherapistRepo {
	return &PostgresTherapistRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const therapistColumns = "id, name, specialization, country, rating, bio, phone, email, availability, created_at, updated_at"

// availability is a jsonb column; pgx unmarshals it straight into the map.
func scanTherapist(row pgx.Row) (*types.Therapist, error) {
	var t types.Therapist
	err := row.Scan(&t.ID, &t.Name, &t.Specialization, &t.Country, &t.Rating, &t.Bio,
		&t.Phone, &t.Email, &t.Availability, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan therapist row: %w", err)
	}
	return &t, nil
}

func (r *PostgresTherapistRepo) GetTherapists(ctx context.Context) ([]types.Therapist, error) {
	ctx, span := otel.Tracer("TherapistRepo").Start(ctx, "GetTherapists", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "therapists"),
	))
	defer span.End()

	rows, err := r.pgpool.Query(ctx,
		"SELECT "+therapistColumns+" FROM therapists ORDER BY name")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	defer rows.Close()

	therapists := make([]types.Therapist, 0)
	for rows.Next() {
		var t types.Therapist
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialization, &t.Country, &t.Rating, &t.Bio,
			&t.Phone, &t.Email, &t.Availability, &t.CreatedAt, &t.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan therapist row: %w", err)
		}
		therapists = append(therapists, t)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("therapist rows iteration failed: %w", err)
	}
	return therapists, nil
}

func (r *PostgresTherapistRepo) GetTherapist(ctx context.Context, id string) (*types.Therapist, error) {
	row := r.pgpool.QueryRow(ctx,
		"SELECT "+therapistColumns+" FROM therapists WHERE id = $1", id)
	therapist, err := scanTherapist(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	return therapist, nil
}

func (r *PostgresTherapistRepo) CreateTherapist(ctx context.Context, params *types.CreateTherapistRequest) (*types.Therapist, error) {
	ctx, span := otel.Tracer("TherapistRepo").Start(ctx, "CreateTherapist", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "therapists"),
	))
	defer span.End()

	rating := 0.0
	if params.Rating != nil {
		rating = *params.Rating
	}
	bio := ""
	if params.Bio != nil {
		bio = *params.Bio
	}

	query := `
        INSERT INTO therapists (name, specialization, country, rating, bio, phone, email, availability)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + therapistColumns

	therapist, err := scanTherapist(r.pgpool.QueryRow(ctx, query,
		params.Name, params.Specialization, params.Country, rating, bio,
		params.Phone, params.Email, params.Availability))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}

	r.logger.InfoContext(ctx, "Therapist created", slog.String("therapistID", therapist.ID))
	return therapist, nil
}

func (r *PostgresTherapistRepo) UpdateTherapist(ctx context.Context, id string, params *types.UpdateTherapistRequest) (*types.Therapist, error) {
	ctx, span := otel.Tracer("TherapistRepo").Start(ctx, "UpdateTherapist", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "therapists"),
	))
	defer span.End()

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *params.Name)
		argID++
	}
	if params.Specialization != nil {
		setClauses = append(setClauses, fmt.Sprintf("specialization = $%d", argID))
		args = append(args, *params.Specialization)
		argID++
	}
	if params.Country != nil {
		setClauses = append(setClauses, fmt.Sprintf("country = $%d", argID))
		args = append(args, *params.Country)
		argID++
	}
	if params.Rating != nil {
		setClauses = append(setClauses, fmt.Sprintf("rating = $%d", argID))
		args = append(args, *params.Rating)
		argID++
	}
	if params.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argID))
		args = append(args, *params.Bio)
		argID++
	}
	if params.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argID))
		args = append(args, *params.Phone)
		argID++
	}
	if params.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *params.Email)
		argID++
	}
	if params.Availability != nil {
		setClauses = append(setClauses, fmt.Sprintf("availability = $%d", argID))
		args = append(args, params.Availability)
		argID++
	}

	if len(setClauses) == 0 {
		return r.GetTherapist(ctx, id)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE therapists SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, therapistColumns)

	therapist, err := scanTherapist(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "therapist not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	return therapist, nil
}

func (r *PostgresTherapistRepo) DeleteTherapist(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("TherapistRepo").Start(ctx, "DeleteTherapist", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "therapists"),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx, "DELETE FROM therapists WHERE id = $1", id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("failed to delete therapist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Therapist deleted", slog.String("therapistID", id))
	return nil
}
