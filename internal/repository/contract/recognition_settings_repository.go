package contract

import (
	"context"

	"facelog-be/internal/entity"
)

type RecognitionSettingsRepository interface {
	// Get returns the singleton settings row, falling back to defaults when
	// the row has never been written.
	Get(ctx context.Context) (*entity.RecognitionSettings, error)
	Save(ctx context.Context, settings *entity.RecognitionSettings) error
}
