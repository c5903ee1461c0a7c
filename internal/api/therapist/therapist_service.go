package therapist

import (
	"context"
	"log/slog"

	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ TherapistService = (*TherapistServiceImpl)(nil)

// TherapistService exposes therapist directory CRUD to the transport layer.
type TherapistService interface {
	GetTherapists(ctx context.Context) ([]types.Therapist, error)
	GetTherapist(ctx context.Context, id string) (*types.Therapist, error)
	CreateTherapist(ctx context.Context, params *types.CreateTherapistRequest) (*types.Therapist, error)
	UpdateTherapist(ctx context.Context, id string, params *types.UpdateTherapistRequest) (*types.Therapist, error)
	DeleteTherapist(ctx context.Context, id string) error
}

type TherapistServiceImpl struct {
	logger *slog.Logger
	repo   TherapistRepo
}

func NewTherapistService(repo TherapistRepo, logger *slog.Logger) *TherapistServiceImpl {
	return &TherapistServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *TherapistServiceImpl) GetTherapists(ctx context.Context) ([]types.Therapist, error) {
	return s.repo.GetTherapists(ctx)
}

func (s *TherapistServiceImpl) GetTherapist(ctx context.Context, id string) (*types.Therapist, error) {
	return s.repo.GetTherapist(ctx, id)
}

func (s *TherapistServiceImpl) CreateTherapist(ctx context.Context, params *types.CreateTherapistRequest) (*types.Therapist, error) {
	s.logger.DebugContext(ctx, "Creating therapist", slog.String("name", params.Name))
	return s.repo.CreateTherapist(ctx, params)
}

func (s *TherapistServiceImpl) UpdateTherapist(ctx context.Context, id string, params *types.UpdateTherapistRequest) (*types.Therapist, error) {
	return s.repo.UpdateTherapist(ctx, id, params)
}

func (s *TherapistServiceImpl) DeleteTherapist(ctx context.Context, id string) error {
	return s.repo.DeleteTherapist(ctx, id)
}
