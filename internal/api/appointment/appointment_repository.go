package appointment

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

const foreignKeyViolation = "23503"

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AppointmentRepo = (*PostgresAppointmentRepo)(nil)

// AppointmentRepo persists appointments. Mutations are owner-scoped: the
// compound id+owner filter makes records of other users indistinguishable
// from missing ones.
type AppointmentRepo interface {
	GetAppointments(ctx context.Context) ([]types.Appointment, error)
	GetAppointmentsByUser(ctx context.Context, userID string) ([]types.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*types.Appointment, error)

	// CreateAppointment inserts a record owned by ownerID.
	CreateAppointment(ctx context.Context, ownerID string, params *types.CreateAppointmentRequest) (*types.Appointment, error)

	// UpdateAppointment applies the non-nil fields of params to the record
	// matching both id and ownerID. Returns api.ErrNotFound when no row
	// matches, whether the record is missing or owned by someone else.
	UpdateAppointment(ctx context.Context, id, ownerID string, params *types.UpdateAppointmentRequest) (*types.Appointment, error)

	// DeleteAppointment removes the record matching both id and ownerID.
	DeleteAppointment(ctx context.Context, id, ownerID string) error
}

type PostgresAppointmentRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresAppointmentRepo(db DB, logger *slog.Logger) *PostgresAppointmentRepo {
	return &PostgresAppointmentRepo{
		logger: logger,
		db:     db,
	}
}

// date is a DATE column; format it server-side so it scans into the
// YYYY-MM-DD string the API exposes.
const appointmentColumns = "id, user_id, therapist_id, to_char(date, 'YYYY-MM-DD') AS date, time, status, notes, created_at, updated_at"

func scanAppointment(row pgx.Row) (*types.Appointment, error) {
	var a types.Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.TherapistID, &a.Date, &a.Time, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan appointment row: %w", err)
	}
	return &a, nil
}

func (r *PostgresAppointmentRepo) GetAppointments(ctx context.Context) ([]types.Appointment, error) {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "GetAppointments", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		"SELECT "+appointmentColumns+" FROM appointments ORDER BY date, time")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]types.Appointment, 0)
	for rows.Next() {
		var a types.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TherapistID, &a.Date, &a.Time, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointment rows iteration failed: %w", err)
	}
	return appointments, nil
}

func (r *PostgresAppointmentRepo) GetAppointmentsByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "GetAppointmentsByUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	rows, err := r.db.Query(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE user_id = $1 ORDER BY date, time", userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list appointments for user: %w", err)
	}
	defer rows.Close()

	appointments := make([]types.Appointment, 0)
	for rows.Next() {
		var a types.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TherapistID, &a.Date, &a.Time, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointment rows iteration failed: %w", err)
	}
	return appointments, nil
}

func (r *PostgresAppointmentRepo) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "GetAppointment", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	row := r.db.QueryRow(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE id = $1", id)
	appointment, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "appointment not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (r *PostgresAppointmentRepo) CreateAppointment(ctx context.Context, ownerID string, params *types.CreateAppointmentRequest) (*types.Appointment, error) {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "CreateAppointment", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	status := types.AppointmentStatusPending
	if params.Status != nil {
		status = *params.Status
	}
	notes := ""
	if params.Notes != nil {
		notes = *params.Notes
	}

	query := `
        INSERT INTO appointments (user_id, therapist_id, date, time, status, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + appointmentColumns

	row := r.db.QueryRow(ctx, query, ownerID, params.TherapistID, params.Date, params.Time, status, notes)
	appointment, err := scanAppointment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			span.SetStatus(codes.Error, "FK violation")
			return nil, fmt.Errorf("referenced record does not exist: %w", api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	r.logger.DebugContext(ctx, "Appointment created",
		slog.String("appointmentID", appointment.ID), slog.String("ownerID", ownerID))
	return appointment, nil
}

func (r *PostgresAppointmentRepo) UpdateAppointment(ctx context.Context, id, ownerID string, params *types.UpdateAppointmentRequest) (*types.Appointment, error) {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "UpdateAppointment", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateAppointment"), slog.String("appointmentID", id))

	var setClauses []string
	var args []interface{}
	argID := 1

	if params.TherapistID != nil {
		setClauses = append(setClauses, fmt.Sprintf("therapist_id = $%d", argID))
		args = append(args, *params.TherapistID)
		argID++
	}
	if params.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", argID))
		args = append(args, *params.Date)
		argID++
	}
	if params.Time != nil {
		setClauses = append(setClauses, fmt.Sprintf("time = $%d", argID))
		args = append(args, *params.Time)
		argID++
	}
	if params.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argID))
		args = append(args, *params.Status)
		argID++
	}
	if params.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argID))
		args = append(args, *params.Notes)
		argID++
	}

	if len(setClauses) == 0 {
		// Nothing to change: still resolve through the owner-scoped
		// filter so a foreign or missing id reads as not found.
		row := r.db.QueryRow(ctx,
			"SELECT "+appointmentColumns+" FROM appointments WHERE id = $1 AND user_id = $2", id, ownerID)
		return scanAppointment(row)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	// The owner is part of the filter, never of the SET list.
	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE appointments SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, argID+1, appointmentColumns)

	l.DebugContext(ctx, "Executing dynamic update query", slog.Int("arg_count", len(args)))

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "no owned row matched")
			return nil, err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("referenced record does not exist: %w", api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

func (r *PostgresAppointmentRepo) DeleteAppointment(ctx context.Context, id, ownerID string) error {
	ctx, span := otel.Tracer("AppointmentRepo").Start(ctx, "DeleteAppointment", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "appointments"),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx,
		"DELETE FROM appointments WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Ok, "no owned row matched")
		return api.ErrNotFound
	}

	r.logger.DebugContext(ctx, "Appointment deleted",
		slog.String("appointmentID", id), slog.String("ownerID", ownerID))
	return nil
}
