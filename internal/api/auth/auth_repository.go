package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the user-directory persistence contract used for identity
// resolution and linking.
type AuthRepo interface {
	// GetUserByProviderID retrieves an account by its external identity id.
	// Returns api.ErrNotFound when no account carries that id.
	GetUserByProviderID(ctx context.Context, providerID string) (*types.UserAccount, error)

	// GetUserByEmail retrieves an account by email.
	GetUserByEmail(ctx context.Context, email string) (*types.UserAccount, error)

	// GetUserByID retrieves an account by internal id.
	GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error)

	// LinkProviderIdentity attaches an external identity (and avatar, when
	// present) to an existing account and returns the updated record.
	LinkProviderIdentity(ctx context.Context, userID, providerID, avatar string) (*types.UserAccount, error)

	// CreateUserFromProfile inserts a new account for a provider profile
	// with role "user". Email collisions surface as api.ErrConflict.
	CreateUserFromProfile(ctx context.Context, profile *Profile) (*types.UserAccount, error)

	// CreateUserByEmail inserts a bare account with no external identity.
	CreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresAuthRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
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

func (r *PostgresAuthRepo) GetUserByProviderID(ctx context.Context, providerID string) (*types.UserAccount, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByProviderID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	row := r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE google_id = $1", providerID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			span.SetStatus(codes.Ok, "no account for provider id")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("lookup by provider id failed: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAccount, error) {
	row := r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup by email failed: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error) {
	row := r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup by id failed: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) LinkProviderIdentity(ctx context.Context, userID, providerID, avatar string) (*types.UserAccount, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "LinkProviderIdentity", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "LinkProviderIdentity"), slog.String("userID", userID))

	var avatarArg *string
	if avatar != "" {
		avatarArg = &avatar
	}
	row := r.pgpool.QueryRow(ctx,
		`UPDATE users
		 SET google_id = $1, avatar = COALESCE($2, avatar), updated_at = $3
		 WHERE id = $4
		 RETURNING `+userColumns,
		providerID, avatarArg, time.Now(), userID)
	user, err := scanUser(row)
	if err != nil {
		l.ErrorContext(ctx, "Failed to link provider identity", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("link provider identity failed: %w", err)
	}

	l.InfoContext(ctx, "Linked external identity to existing account")
	return user, nil
}

func (r *PostgresAuthRepo) CreateUserFromProfile(ctx context.Context, profile *Profile) (*types.UserAccount, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUserFromProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	var avatarArg *string
	if profile.AvatarURL != "" {
		avatarArg = &profile.AvatarURL
	}
	row := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (google_id, name, email, avatar, role)
		 VALUES ($1, $2, $3, $4, 'user')
		 RETURNING `+userColumns,
		profile.ExternalID, profile.DisplayName, profile.Email, avatarArg)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			span.SetStatus(codes.Error, "duplicate account")
			return nil, fmt.Errorf("account with this email already exists: %w", api.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("create user from profile failed: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) CreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error) {
	row := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (name, email, role) VALUES ($1, $2, 'user')
		 RETURNING `+userColumns,
		name, email)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("account with this email already exists: %w", api.ErrConflict)
		}
		return nil, fmt.Errorf("create user by email failed: %w", err)
	}
	return user, nil
}
