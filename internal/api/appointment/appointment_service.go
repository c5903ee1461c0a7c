package appointment

import (
	"context"
	"log/slog"

	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ AppointmentService = (*AppointmentServiceImpl)(nil)

// AppointmentService exposes appointment operations to the transport layer.
// Mutations take the verified owner id; the service never trusts an owner
// supplied in a request body.
type AppointmentService interface {
	GetAppointments(ctx context.Context) ([]types.Appointment, error)
	GetAppointmentsByUser(ctx context.Context, userID string) ([]types.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*types.Appointment, error)
	CreateAppointment(ctx context.Context, ownerID string, params *types.CreateAppointmentRequest) (*types.Appointment, error)
	UpdateAppointment(ctx context.Context, id, ownerID string, params *types.UpdateAppointmentRequest) (*types.Appointment, error)
	DeleteAppointment(ctx context.Context, id, ownerID string) error
}

type AppointmentServiceImpl struct {
	logger *slog.Logger
	repo   AppointmentRepo
}

func NewAppointmentService(repo AppointmentRepo, logger *slog.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *AppointmentServiceImpl) GetAppointments(ctx context.Context) ([]types.Appointment, error) {
	return s.repo.GetAppointments(ctx)
}

func (s *AppointmentServiceImpl) GetAppointmentsByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	return s.repo.GetAppointmentsByUser(ctx, userID)
}

func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *AppointmentServiceImpl) CreateAppointment(ctx context.Context, ownerID string, params *types.CreateAppointmentRequest) (*types.Appointment, error) {
	s.logger.DebugContext(ctx, "Creating appointment",
		slog.String("ownerID", ownerID), slog.String("therapistID", params.TherapistID))
	return s.repo.CreateAppointment(ctx, ownerID, params)
}

func (s *AppointmentServiceImpl) UpdateAppointment(ctx context.Context, id, ownerID string, params *types.UpdateAppointmentRequest) (*types.Appointment, error) {
	return s.repo.UpdateAppointment(ctx, id, ownerID, params)
}

func (s *AppointmentServiceImpl) DeleteAppointment(ctx context.Context, id, ownerID string) error {
	return s.repo.DeleteAppointment(ctx, id, ownerID)
}
