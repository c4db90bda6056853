package service

import (
	"context"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/repository/unitofwork"
)

// CacheFlusher drops every cached encoding set.
type CacheFlusher interface {
	InvalidateAll()
}

type ISettingsService interface {
	Get(ctx context.Context) (*dto.RecognitionSettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateRecognitionSettingsRequest) error
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	flusher    CacheFlusher
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory, flusher CacheFlusher) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		flusher:    flusher,
	}
}

func (s *settingsService) Get(ctx context.Context) (*dto.RecognitionSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.RecognitionSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RecognitionSettingsResponse{
		Threshold:      settings.Threshold,
		DistanceMetric: settings.DistanceMetric,
		DetectionModel: settings.DetectionModel,
	}, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateRecognitionSettingsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings := &entity.RecognitionSettings{
		Threshold:      req.Threshold,
		DistanceMetric: req.DistanceMetric,
		DetectionModel: req.DetectionModel,
	}
	if err := uow.RecognitionSettingsRepository().Save(ctx, settings); err != nil {
		return err
	}
	// Cached encoding sets are metric-agnostic, but flushing keeps the next
	// frame from mixing a new threshold with a half-warmed roster.
	if s.flusher != nil {
		s.flusher.InvalidateAll()
	}
	return nil
}
