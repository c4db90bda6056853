package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrFichaNotFound      = errors.New("ficha not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionInactive    = errors.New("session is not active")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotAStudent        = errors.New("user is not a student")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
