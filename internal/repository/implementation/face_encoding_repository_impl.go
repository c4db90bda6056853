package implementation

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaceEncodingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FaceEncodingMapper
}

func NewFaceEncodingRepository(db *gorm.DB) contract.FaceEncodingRepository {
	return &FaceEncodingRepositoryImpl{
		db:     db,
		mapper: mapper.NewFaceEncodingMapper(),
	}
}

func (r *FaceEncodingRepositoryImpl) Create(ctx context.Context, encoding *entity.FaceEncoding) error {
	m := r.mapper.ToModel(encoding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*encoding = *r.mapper.ToEntity(m)
	return nil
}

func (r *FaceEncodingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceEncoding, error) {
	var models []*model.FaceEncoding
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FaceEncodingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.FaceEncoding{}).Count(&count).Error
	return count, err
}

func (r *FaceEncodingRepositoryImpl) DeactivateByUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.FaceEncoding{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		Update("is_active", false).Error
}

func (r *FaceEncodingRepositoryImpl) ActiveForFicha(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error) {
	var models []*model.FaceEncoding
	err := r.db.WithContext(ctx).
		Joins("JOIN ficha_students ON ficha_students.user_id = face_encodings.user_id").
		Where("ficha_students.ficha_id = ?", fichaId).
		Where("face_encodings.is_active = ?", true).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	known := make([]facematch.KnownEncoding, 0, len(models))
	for _, m := range models {
		known = append(known, facematch.KnownEncoding{
			StudentId: m.UserId,
			Encoding:  facematch.Embedding(m.Encoding.Slice()),
		})
	}
	return known, nil
}
