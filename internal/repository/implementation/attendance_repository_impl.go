package implementation

import (
	"context"
	"errors"
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttendanceMapper
}

func NewAttendanceRepository(db *gorm.DB) contract.AttendanceRepository {
	return &AttendanceRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttendanceMapper(),
	}
}

func (r *AttendanceRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.Attendance, len(records))
	for i, rec := range records {
		models[i] = r.mapper.ToModel(rec)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *AttendanceRepositoryImpl) Update(ctx context.Context, record *entity.Attendance) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttendanceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attendance, error) {
	var m model.Attendance
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttendanceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attendance, error) {
	var models []*model.Attendance
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// TransitionFromAbsent relies on the database making the guarded update
// atomic: two concurrent callers both targeting status='absent' serialize on
// the row lock and only the first sees an affected row.
func (r *AttendanceRepositoryImpl) TransitionFromAbsent(ctx context.Context, sessionId, studentId uuid.UUID, status string, checkIn time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("session_id = ? AND student_id = ? AND status = ?", sessionId, studentId, entity.AttendanceAbsent).
		Updates(map[string]interface{}{
			"status":           status,
			"check_in_time":    checkIn,
			"verified_by_face": true,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
