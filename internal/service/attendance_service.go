package service

import (
	"context"
	"time"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Outcomes of applying a face verification to an attendance record.
const (
	ApplyTransitioned  = "transitioned"
	ApplyAlreadyMarked = "already_marked"
	ApplyRecordMissing = "record_missing"
)

// ApplyResult reports what a verification did to the attendance row.
type ApplyResult struct {
	Outcome string
	Status  string // present or late when Outcome is transitioned
}

type IAttendanceService interface {
	// ApplyFaceVerification moves a student's record out of absent if it is
	// still absent. The transition happens at most once per student per
	// session no matter how many frames match them.
	ApplyFaceVerification(ctx context.Context, session *entity.AttendanceSession, studentId uuid.UUID, observed time.Time) (*ApplyResult, error)

	Override(ctx context.Context, req *dto.OverrideAttendanceRequest) error
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.AttendanceResponse, error)
}

type attendanceService struct {
	uowFactory unitofwork.RepositoryFactory
	policy     *GracePeriodPolicy
	logger     logger.ILogger
}

func NewAttendanceService(uowFactory unitofwork.RepositoryFactory, policy *GracePeriodPolicy, log logger.ILogger) IAttendanceService {
	return &attendanceService{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     log,
	}
}

func (s *attendanceService) ApplyFaceVerification(ctx context.Context, session *entity.AttendanceSession, studentId uuid.UUID, observed time.Time) (*ApplyResult, error) {
	status, err := s.policy.ClassifyArrival(session, observed)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	transitioned, err := uow.AttendanceRepository().TransitionFromAbsent(ctx, session.Id, studentId, status, observed)
	if err != nil {
		return nil, err
	}
	if transitioned {
		return &ApplyResult{Outcome: ApplyTransitioned, Status: status}, nil
	}

	// The guarded update matched nothing: either the record was already
	// marked (normal for repeated frames) or the roster seed never ran.
	record, err := uow.AttendanceRepository().FindOne(ctx,
		specification.BySession{SessionID: session.Id},
		specification.ByStudent{StudentID: studentId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		s.logger.Warn("attendance", "matched student has no attendance record", map[string]interface{}{
			"sessionId": session.Id.String(),
			"studentId": studentId.String(),
		})
		return &ApplyResult{Outcome: ApplyRecordMissing}, nil
	}
	return &ApplyResult{Outcome: ApplyAlreadyMarked, Status: record.Status}, nil
}

func (s *attendanceService) Override(ctx context.Context, req *dto.OverrideAttendanceRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.AttendanceRepository().FindOne(ctx,
		specification.BySession{SessionID: req.SessionId},
		specification.ByStudent{StudentID: req.StudentId},
	)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrAttendanceNotFound
	}

	record.Status = req.Status
	switch req.Status {
	case entity.AttendancePresent, entity.AttendanceLate:
		if record.CheckInTime == nil {
			now := time.Now()
			record.CheckInTime = &now
		}
	default:
		record.CheckInTime = nil
	}
	// A manual decision stands on its own; the face flag no longer applies.
	record.VerifiedByFace = false

	return uow.AttendanceRepository().Update(ctx, record)
}

func (s *attendanceService) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.AttendanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.AttendanceRepository().FindAll(ctx, specification.BySession{SessionID: sessionId})
	if err != nil {
		return nil, err
	}

	studentIds := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		studentIds = append(studentIds, r.StudentId)
	}
	names := map[uuid.UUID]string{}
	if len(studentIds) > 0 {
		users, err := uow.UserRepository().FindAll(ctx, specification.Where{Query: "id IN ?", Args: []interface{}{studentIds}})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.Id] = u.FullName()
		}
	}

	res := make([]*dto.AttendanceResponse, len(records))
	for i, r := range records {
		res[i] = &dto.AttendanceResponse{
			Id:             r.Id,
			SessionId:      r.SessionId,
			StudentId:      r.StudentId,
			StudentName:    names[r.StudentId],
			Status:         r.Status,
			CheckInTime:    r.CheckInTime,
			VerifiedByFace: r.VerifiedByFace,
		}
	}
	return res, nil
}
