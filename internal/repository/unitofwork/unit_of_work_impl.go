package unitofwork

import (
	"context"
	"fmt"

	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FichaRepository() contract.FichaRepository {
	return implementation.NewFichaRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AttendanceSessionRepository() contract.AttendanceSessionRepository {
	return implementation.NewAttendanceSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AttendanceRepository() contract.AttendanceRepository {
	return implementation.NewAttendanceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FaceEncodingRepository() contract.FaceEncodingRepository {
	return implementation.NewFaceEncodingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FaceVerificationLogRepository() contract.FaceVerificationLogRepository {
	return implementation.NewFaceVerificationLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RecognitionSettingsRepository() contract.RecognitionSettingsRepository {
	return implementation.NewRecognitionSettingsRepository(u.getDB())
}
