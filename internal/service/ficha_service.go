package service

import (
	"context"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"
	"facelog-be/pkg/events"
	pktNats "facelog-be/pkg/nats"

	"github.com/google/uuid"
)

type IFichaService interface {
	Create(ctx context.Context, req *dto.CreateFichaRequest) (*dto.CreateFichaResponse, error)
	Get(ctx context.Context, fichaId uuid.UUID) (*dto.FichaResponse, error)
	List(ctx context.Context) ([]*dto.FichaResponse, error)
	EnrollStudents(ctx context.Context, req *dto.EnrollStudentsRequest) error
	ListStudents(ctx context.Context, fichaId uuid.UUID) ([]*dto.FichaStudentResponse, error)
}

type fichaService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewFichaService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IFichaService {
	return &fichaService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *fichaService) Create(ctx context.Context, req *dto.CreateFichaRequest) (*dto.CreateFichaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	start := req.StartDate
	end := req.EndDate
	ficha := &entity.Ficha{
		Program:   req.Program,
		Number:    req.Number,
		Schedule:  req.Schedule,
		StartDate: &start,
		EndDate:   &end,
	}
	if err := uow.FichaRepository().Create(ctx, ficha); err != nil {
		return nil, err
	}
	return &dto.CreateFichaResponse{Id: ficha.Id}, nil
}

func (s *fichaService) Get(ctx context.Context, fichaId uuid.UUID) (*dto.FichaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ficha, err := uow.FichaRepository().FindOne(ctx, specification.ByID{ID: fichaId})
	if err != nil {
		return nil, err
	}
	if ficha == nil {
		return nil, ErrFichaNotFound
	}
	return toFichaResponse(ficha), nil
}

func (s *fichaService) List(ctx context.Context) ([]*dto.FichaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	fichas, err := uow.FichaRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	res := make([]*dto.FichaResponse, len(fichas))
	for i, f := range fichas {
		res[i] = toFichaResponse(f)
	}
	return res, nil
}

func (s *fichaService) EnrollStudents(ctx context.Context, req *dto.EnrollStudentsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ficha, err := uow.FichaRepository().FindOne(ctx, specification.ByID{ID: req.FichaId})
	if err != nil {
		return err
	}
	if ficha == nil {
		return ErrFichaNotFound
	}

	// Only students join a roster.
	users, err := uow.UserRepository().FindAll(ctx, specification.Where{Query: "id IN ?", Args: []interface{}{req.StudentIds}})
	if err != nil {
		return err
	}
	if len(users) != len(req.StudentIds) {
		return ErrUserNotFound
	}
	for _, u := range users {
		if u.Role != entity.RoleStudent {
			return ErrNotAStudent
		}
	}

	if err := uow.FichaRepository().AddStudents(ctx, req.FichaId, req.StudentIds); err != nil {
		return err
	}

	s.publishRosterChanged(ctx, req.FichaId, "students_enrolled")
	return nil
}

func (s *fichaService) ListStudents(ctx context.Context, fichaId uuid.UUID) ([]*dto.FichaStudentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	studentIds, err := uow.FichaRepository().StudentIds(ctx, fichaId)
	if err != nil {
		return nil, err
	}
	if len(studentIds) == 0 {
		return []*dto.FichaStudentResponse{}, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.Where{Query: "id IN ?", Args: []interface{}{studentIds}})
	if err != nil {
		return nil, err
	}

	encodings, err := uow.FaceEncodingRepository().FindAll(ctx,
		specification.Where{Query: "user_id IN ?", Args: []interface{}{studentIds}},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	enrolled := map[uuid.UUID]bool{}
	for _, e := range encodings {
		enrolled[e.UserId] = true
	}

	res := make([]*dto.FichaStudentResponse, len(users))
	for i, u := range users {
		res[i] = &dto.FichaStudentResponse{
			Id:          u.Id,
			FullName:    u.FullName(),
			Email:       u.Email,
			HasEncoding: enrolled[u.Id],
		}
	}
	return res, nil
}

func (s *fichaService) publishRosterChanged(ctx context.Context, fichaId uuid.UUID, reason string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewRosterChangedEvent(fichaId, reason)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Error("ficha", "failed to publish roster change", map[string]interface{}{
			"error":   err.Error(),
			"fichaId": fichaId.String(),
		})
	}
}

func toFichaResponse(f *entity.Ficha) *dto.FichaResponse {
	res := &dto.FichaResponse{
		Id:           f.Id,
		Number:       f.Number,
		Program:      f.Program,
		Schedule:     f.Schedule,
		StudentCount: len(f.StudentIds),
		CreatedAt:    f.CreatedAt,
	}
	if f.StartDate != nil {
		res.StartDate = *f.StartDate
	}
	if f.EndDate != nil {
		res.EndDate = *f.EndDate
	}
	return res
}
