package implementation

import (
	"context"
	"errors"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FichaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FichaMapper
}

func NewFichaRepository(db *gorm.DB) contract.FichaRepository {
	return &FichaRepositoryImpl{
		db:     db,
		mapper: mapper.NewFichaMapper(),
	}
}

func (r *FichaRepositoryImpl) Create(ctx context.Context, ficha *entity.Ficha) error {
	m := r.mapper.ToModel(ficha)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ficha = *r.mapper.ToEntity(m)
	return nil
}

func (r *FichaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ficha, error) {
	var m model.Ficha
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Preload("Students").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FichaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ficha, error) {
	var models []*model.Ficha
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Ficha, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *FichaRepositoryImpl) AddStudents(ctx context.Context, fichaId uuid.UUID, studentIds []uuid.UUID) error {
	if len(studentIds) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, len(studentIds))
	for i, id := range studentIds {
		rows[i] = map[string]interface{}{"ficha_id": fichaId, "user_id": id}
	}
	return r.db.WithContext(ctx).
		Table("ficha_students").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error
}

func (r *FichaRepositoryImpl) StudentIds(ctx context.Context, fichaId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("ficha_students").
		Where("ficha_id = ?", fichaId).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *FichaRepositoryImpl) FichaIdsForStudent(ctx context.Context, studentId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("ficha_students").
		Where("user_id = ?", studentId).
		Pluck("ficha_id", &ids).Error
	return ids, err
}
