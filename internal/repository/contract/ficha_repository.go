package contract

import (
	"context"

	"facelog-be/internal/entity"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FichaRepository interface {
	Create(ctx context.Context, ficha *entity.Ficha) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ficha, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ficha, error)
	// AddStudents enrolls users into the ficha roster (idempotent on duplicates).
	AddStudents(ctx context.Context, fichaId uuid.UUID, studentIds []uuid.UUID) error
	// StudentIds returns the ids of every student enrolled in the ficha.
	StudentIds(ctx context.Context, fichaId uuid.UUID) ([]uuid.UUID, error)
	// FichaIdsForStudent returns every ficha the student is enrolled in.
	// Used to target cache invalidation after a re-enrollment.
	FichaIdsForStudent(ctx context.Context, studentId uuid.UUID) ([]uuid.UUID, error)
}
