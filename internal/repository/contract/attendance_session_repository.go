package contract

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/repository/specification"
)

type AttendanceSessionRepository interface {
	Create(ctx context.Context, session *entity.AttendanceSession) error
	Update(ctx context.Context, session *entity.AttendanceSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttendanceSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttendanceSession, error)
}
