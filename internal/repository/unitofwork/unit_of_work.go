package unitofwork

import (
	"context"

	"facelog-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FichaRepository() contract.FichaRepository
	AttendanceSessionRepository() contract.AttendanceSessionRepository
	AttendanceRepository() contract.AttendanceRepository
	FaceEncodingRepository() contract.FaceEncodingRepository
	FaceVerificationLogRepository() contract.FaceVerificationLogRepository
	RecognitionSettingsRepository() contract.RecognitionSettingsRepository
}
