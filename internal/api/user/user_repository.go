package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

const uniqueViolation = "23505"

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo is the account persistence contract for the directory CRUD
// surface. Email collisions surface as api.ErrConflict.
type UserRepo interface {
	GetUsers(ctx context.Context) ([]types.UserAccount, error)
	GetUser(ctx context.Context, id string) (*types.UserAccount, error)
	CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error)
	UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error)
	DeleteUser(ctx context.Context, id string) error
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresUserRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const userColumns = "id, google_id, name, email, avatar, role, created_at, updated_at"

func scanUser(row pgx.Row) (*types.UserAccount, error) {
	var u types.UserAccount
	err := row.Scan(&u.ID, &u.GoogleID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) GetUsers(ctx context.Context) ([]types.UserAccount, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUsers", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	rows, err := r.pgpool.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]types.UserAccount, 0)
	for rows.Next() {
		var u types.UserAccount
		if err := rows.Scan(&u.ID, &u.GoogleID, &u.Name, &u.Email, &u.Avatar, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("user rows iteration failed: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepo) GetUser(ctx context.Context, id string) (*types.UserAccount, error) {
	row := r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	role := "user"
	if params.Role != nil {
		role = *params.Role
	}

	query := `
        INSERT INTO users (google_id, name, email, avatar, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	user, err := scanUser(r.pgpool.QueryRow(ctx, query,
		params.GoogleID, params.Name, params.Email, params.Avatar, role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			span.SetStatus(codes.Error, "unique violation")
			return nil, fmt.Errorf("email or provider id already registered: %w", api.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.InfoContext(ctx, "User created", slog.String("userID", user.ID))
	return user, nil
}

func (r *PostgresUserRepo) UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "UpdateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
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
	if params.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *params.Email)
		argID++
	}
	if params.Avatar != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar = $%d", argID))
		args = append(args, *params.Avatar)
		argID++
	}
	if params.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argID))
		args = append(args, *params.Role)
		argID++
	}

	if len(setClauses) == 0 {
		return r.GetUser(ctx, id)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, userColumns)

	user, err := scanUser(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "user not found")
			return nil, err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("email already registered: %w", api.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) DeleteUser(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "DeleteUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Appointments and wellness entries reference accounts.
			return fmt.Errorf("user still has dependent records: %w", api.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}

	r.logger.InfoContext(ctx, "User deleted", slog.String("userID", id))
	return nil
}
