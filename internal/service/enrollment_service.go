package service

import (
	"context"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"
	"facelog-be/pkg/events"
	pktNats "facelog-be/pkg/nats"
)

type IEnrollmentService interface {
	// EnrollFace extracts the embedding from a single-face portrait and makes
	// it the student's active encoding. Previous encodings are deactivated,
	// never deleted.
	EnrollFace(ctx context.Context, req *dto.EnrollFaceRequest) (*dto.EnrollFaceResponse, error)
}

type enrollmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       facedetect.Provider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewEnrollmentService(
	uowFactory unitofwork.RepositoryFactory,
	provider facedetect.Provider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IEnrollmentService {
	return &enrollmentService{
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *enrollmentService) EnrollFace(ctx context.Context, req *dto.EnrollFaceRequest) (*dto.EnrollFaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.StudentId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Role != entity.RoleStudent {
		return nil, ErrNotAStudent
	}

	embedding, err := s.provider.Embed(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	active, err := uow.FaceEncodingRepository().Count(ctx,
		specification.ByUser{UserID: req.StudentId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	replaced := active > 0

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.FaceEncodingRepository().DeactivateByUser(ctx, req.StudentId); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	encoding := &entity.FaceEncoding{
		UserId:   req.StudentId,
		Encoding: embedding,
		IsActive: true,
	}
	if err := uow.FaceEncodingRepository().Create(ctx, encoding); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Every ficha this student belongs to now caches a stale encoding set.
	fichaIds, err := uow.FichaRepository().FichaIdsForStudent(ctx, req.StudentId)
	if err != nil {
		s.logger.Error("enrollment", "failed to resolve fichas for invalidation", map[string]interface{}{
			"error":     err.Error(),
			"studentId": req.StudentId.String(),
		})
	} else if s.eventPublisher != nil {
		for _, fichaId := range fichaIds {
			evt := events.NewRosterChangedEvent(fichaId, "encoding_replaced")
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Error("enrollment", "failed to publish roster change", map[string]interface{}{
					"error":   err.Error(),
					"fichaId": fichaId.String(),
				})
			}
		}
	}

	return &dto.EnrollFaceResponse{EncodingId: encoding.Id, Replaced: replaced}, nil
}
