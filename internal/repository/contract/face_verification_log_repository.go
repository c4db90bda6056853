package contract

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/repository/specification"
)

type FaceVerificationLogRepository interface {
	Create(ctx context.Context, log *entity.FaceVerificationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceVerificationLog, error)
}
