package contract

import (
	"context"
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	CreateBulk(ctx context.Context, records []*entity.Attendance) error
	Update(ctx context.Context, record *entity.Attendance) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attendance, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attendance, error)
	// TransitionFromAbsent performs the conditional check-in update:
	//
	//   UPDATE ... SET status, check_in_time, verified_by_face
	//   WHERE session_id = ? AND student_id = ? AND status = 'absent'
	//
	// It reports whether this call won the transition. False with a nil error
	// means the row was already past absent (or was transitioned by a
	// concurrent caller between read and write).
	TransitionFromAbsent(ctx context.Context, sessionId, studentId uuid.UUID, status string, checkIn time.Time) (bool, error)
}
