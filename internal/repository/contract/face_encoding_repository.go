package contract

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FaceEncodingRepository interface {
	Create(ctx context.Context, encoding *entity.FaceEncoding) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FaceEncoding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeactivateByUser marks every encoding of the user inactive. History is
	// kept; nothing is deleted.
	DeactivateByUser(ctx context.Context, userId uuid.UUID) error
	// ActiveForFicha loads the active (student, embedding) pairs of every
	// student enrolled in the ficha. This is the enrollment-store read behind
	// the encoding cache.
	ActiveForFicha(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error)
}
