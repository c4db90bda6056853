package service

import (
	"context"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	// Schedule creates a session and seeds one absent attendance row per
	// enrolled student, so the recognizer always finds a row to transition.
	Schedule(ctx context.Context, req *dto.ScheduleSessionRequest) (*dto.ScheduleSessionResponse, error)
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	ListByFicha(ctx context.Context, fichaId uuid.UUID) ([]*dto.SessionResponse, error)
	SetActive(ctx context.Context, sessionId uuid.UUID, active bool) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *sessionService) Schedule(ctx context.Context, req *dto.ScheduleSessionRequest) (*dto.ScheduleSessionResponse, error) {
	if req.ScheduledStart.IsZero() || req.ScheduledEnd.IsZero() {
		return nil, ErrMissingTimestamp
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ficha, err := uow.FichaRepository().FindOne(ctx, specification.ByID{ID: req.FichaId})
	if err != nil {
		return nil, err
	}
	if ficha == nil {
		return nil, ErrFichaNotFound
	}

	studentIds, err := uow.FichaRepository().StudentIds(ctx, req.FichaId)
	if err != nil {
		return nil, err
	}

	// Session and its seed rows land together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	session := &entity.AttendanceSession{
		FichaId:        req.FichaId,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		GraceMinutes:   req.GraceMinutes,
		IsActive:       true,
	}
	if err := uow.AttendanceSessionRepository().Create(ctx, session); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	records := make([]*entity.Attendance, len(studentIds))
	for i, studentId := range studentIds {
		records[i] = &entity.Attendance{
			SessionId: session.Id,
			StudentId: studentId,
			Status:    entity.AttendanceAbsent,
		}
	}
	if err := uow.AttendanceRepository().CreateBulk(ctx, records); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("session", "session scheduled", map[string]interface{}{
		"sessionId": session.Id.String(),
		"fichaId":   req.FichaId.String(),
		"seeded":    len(records),
	})
	return &dto.ScheduleSessionResponse{Id: session.Id, SeededCount: len(records)}, nil
}

func (s *sessionService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.AttendanceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) ListByFicha(ctx context.Context, fichaId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.AttendanceSessionRepository().FindAll(ctx,
		specification.ByFicha{FichaID: fichaId},
		specification.OrderBy{Field: "scheduled_start", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		res[i] = toSessionResponse(session)
	}
	return res, nil
}

func (s *sessionService) SetActive(ctx context.Context, sessionId uuid.UUID, active bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.AttendanceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	session.IsActive = active
	return uow.AttendanceSessionRepository().Update(ctx, session)
}

func toSessionResponse(s *entity.AttendanceSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:             s.Id,
		FichaId:        s.FichaId,
		ScheduledStart: s.ScheduledStart,
		ScheduledEnd:   s.ScheduledEnd,
		GraceMinutes:   s.GraceMinutes,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}
