package implementation

import (
	"context"
	"errors"

	"facelog-be/internal/entity"
	"facelog-be/internal/mapper"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecognitionSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecognitionSettingsMapper
}

func NewRecognitionSettingsRepository(db *gorm.DB) contract.RecognitionSettingsRepository {
	return &RecognitionSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecognitionSettingsMapper(),
	}
}

func (r *RecognitionSettingsRepositoryImpl) Get(ctx context.Context) (*entity.RecognitionSettings, error) {
	var m model.RecognitionSettings
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.DefaultRecognitionSettings(), nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RecognitionSettingsRepositoryImpl) Save(ctx context.Context, settings *entity.RecognitionSettings) error {
	settings.Id = 1
	m := r.mapper.ToModel(settings)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}
