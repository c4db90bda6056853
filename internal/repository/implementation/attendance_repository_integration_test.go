package implementation

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/model"
	"facelog-be/internal/repository/specification"
	"facelog-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB connects using DB_CONNECTION_STRING and skips when it is not set, so
// the suite stays runnable without a database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}
	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Attendance{}))
	return db
}

func seedAbsentRow(t *testing.T, db *gorm.DB) (sessionId, studentId uuid.UUID) {
	t.Helper()
	sessionId, studentId = uuid.New(), uuid.New()
	row := &model.Attendance{
		Id:        uuid.New(),
		SessionId: sessionId,
		StudentId: studentId,
		Status:    entity.AttendanceAbsent,
	}
	require.NoError(t, db.Create(row).Error)
	t.Cleanup(func() {
		db.Where("session_id = ?", sessionId).Delete(&model.Attendance{})
	})
	return sessionId, studentId
}

func TestTransitionFromAbsent_Integration(t *testing.T) {
	db := testDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	sessionId, studentId := seedAbsentRow(t, db)

	checkIn := time.Now()
	transitioned, err := repo.TransitionFromAbsent(ctx, sessionId, studentId, entity.AttendancePresent, checkIn)
	require.NoError(t, err)
	assert.True(t, transitioned)

	// A second call finds no absent row and must not touch anything.
	transitioned, err = repo.TransitionFromAbsent(ctx, sessionId, studentId, entity.AttendanceLate, time.Now())
	require.NoError(t, err)
	assert.False(t, transitioned)

	record, err := repo.FindOne(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ByStudent{StudentID: studentId},
	)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, entity.AttendancePresent, record.Status)
	assert.True(t, record.VerifiedByFace)
	require.NotNil(t, record.CheckInTime)
	assert.WithinDuration(t, checkIn, *record.CheckInTime, time.Second)
}

func TestTransitionFromAbsent_ConcurrentWinners_Integration(t *testing.T) {
	db := testDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	sessionId, studentId := seedAbsentRow(t, db)

	const frames = 8
	var wg sync.WaitGroup
	wins := make(chan bool, frames)
	for i := 0; i < frames; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TransitionFromAbsent(ctx, sessionId, studentId, entity.AttendancePresent, time.Now())
			assert.NoError(t, err)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent frame may claim the transition")
}
