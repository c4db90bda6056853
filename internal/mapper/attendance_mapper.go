package mapper

import (
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/model"
)

type AttendanceMapper struct{}

func NewAttendanceMapper() *AttendanceMapper {
	return &AttendanceMapper{}
}

func (m *AttendanceMapper) ToEntity(a *model.Attendance) *entity.Attendance {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Attendance{
		Id:             a.Id,
		SessionId:      a.SessionId,
		StudentId:      a.StudentId,
		Status:         a.Status,
		CheckInTime:    a.CheckInTime,
		VerifiedByFace: a.VerifiedByFace,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *AttendanceMapper) ToModel(a *entity.Attendance) *model.Attendance {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Attendance{
		Id:             a.Id,
		SessionId:      a.SessionId,
		StudentId:      a.StudentId,
		Status:         a.Status,
		CheckInTime:    a.CheckInTime,
		VerifiedByFace: a.VerifiedByFace,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *AttendanceMapper) ToEntities(records []*model.Attendance) []*entity.Attendance {
	entities := make([]*entity.Attendance, len(records))
	for i, a := range records {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

type AttendanceSessionMapper struct{}

func NewAttendanceSessionMapper() *AttendanceSessionMapper {
	return &AttendanceSessionMapper{}
}

func (m *AttendanceSessionMapper) ToEntity(s *model.AttendanceSession) *entity.AttendanceSession {
	if s == nil {
		return nil
	}

	return &entity.AttendanceSession{
		Id:             s.Id,
		FichaId:        s.FichaId,
		ScheduledStart: s.ScheduledStart,
		ScheduledEnd:   s.ScheduledEnd,
		GraceMinutes:   s.GraceMinutes,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

func (m *AttendanceSessionMapper) ToModel(s *entity.AttendanceSession) *model.AttendanceSession {
	if s == nil {
		return nil
	}

	return &model.AttendanceSession{
		Id:             s.Id,
		FichaId:        s.FichaId,
		ScheduledStart: s.ScheduledStart,
		ScheduledEnd:   s.ScheduledEnd,
		GraceMinutes:   s.GraceMinutes,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}
