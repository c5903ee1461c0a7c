package wellness

import (
	"context"
	"log/slog"

	"github.com/globalcounseling/counseling-api/internal/types"
)

var _ WellnessService = (*WellnessServiceImpl)(nil)

// WellnessService exposes wellness-entry operations to the transport layer.
type WellnessService interface {
	GetEntries(ctx context.Context) ([]types.WellnessEntry, error)
	GetEntriesByUser(ctx context.Context, userID string) ([]types.WellnessEntry, error)
	GetEntry(ctx context.Context, id string) (*types.WellnessEntry, error)
	CreateEntry(ctx context.Context, ownerID string, params *types.CreateWellnessEntryRequest) (*types.WellnessEntry, error)
	UpdateEntry(ctx context.Context, id, ownerID string, params *types.UpdateWellnessEntryRequest) (*types.WellnessEntry, error)
	DeleteEntry(ctx context.Context, id, ownerID string) error
}

type WellnessServiceImpl struct {
	logger *slog.Logger
	repo   WellnessRepo
}

func NewWellnessService(repo WellnessRepo, logger *slog.Logger) *WellnessServiceImpl {
	return &WellnessServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *WellnessServiceImpl) GetEntries(ctx context.Context) ([]types.WellnessEntry, error) {
	return s.repo.GetEntries(ctx)
}

func (s *WellnessServiceImpl) GetEntriesByUser(ctx context.Context, userID string) ([]types.WellnessEntry, error) {
	return s.repo.GetEntriesByUser(ctx, userID)
}

func (s *WellnessServiceImpl) GetEntry(ctx context.Context, id string) (*types.WellnessEntry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *WellnessServiceImpl) CreateEntry(ctx context.Context, ownerID string, params *types.CreateWellnessEntryRequest) (*types.WellnessEntry, error) {
	s.logger.DebugContext(ctx, "Creating wellness entry", slog.String("ownerID", ownerID))
	return s.repo.CreateEntry(ctx, ownerID, params)
}

func (s *WellnessServiceImpl) UpdateEntry(ctx context.Context, id, ownerID string, params *types.UpdateWellnessEntryRequest) (*types.WellnessEntry, error) {
	return s.repo.UpdateEntry(ctx, id, ownerID, params)
}

func (s *WellnessServiceImpl) DeleteEntry(ctx context.Context, id, ownerID string) error {
	return s.repo.DeleteEntry(ctx, id, ownerID)
}
