package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attendanceFixture() (IAttendanceService, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	factory := &fakeFactory{uow: &fakeUow{attendance: repo}}
	return NewAttendanceService(factory, NewGracePeriodPolicy(), nopLogger{}), repo
}

func TestApplyFaceVerification_TransitionsWithinGrace(t *testing.T) {
	svc, repo := attendanceFixture()
	session := activeSession()
	student := uuid.New()
	repo.seed(student)

	res, err := svc.ApplyFaceVerification(context.Background(), session, student, session.ScheduledStart.Add(5*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ApplyTransitioned, res.Outcome)
	assert.Equal(t, entity.AttendancePresent, res.Status)

	record, _ := repo.FindOne(context.Background(), specification.ByStudent{StudentID: student})
	require.NotNil(t, record)
	assert.Equal(t, entity.AttendancePresent, record.Status)
	assert.True(t, record.VerifiedByFace)
	require.NotNil(t, record.CheckInTime)
}

func TestApplyFaceVerification_TransitionsLateAfterGrace(t *testing.T) {
	svc, repo := attendanceFixture()
	session := activeSession()
	student := uuid.New()
	repo.seed(student)

	res, err := svc.ApplyFaceVerification(context.Background(), session, student, session.ScheduledStart.Add(25*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ApplyTransitioned, res.Outcome)
	assert.Equal(t, entity.AttendanceLate, res.Status)
}

func TestApplyFaceVerification_SecondCallIsNoOp(t *testing.T) {
	svc, repo := attendanceFixture()
	session := activeSession()
	student := uuid.New()
	repo.seed(student)

	first, err := svc.ApplyFaceVerification(context.Background(), session, student, session.ScheduledStart)
	require.NoError(t, err)
	require.Equal(t, ApplyTransitioned, first.Outcome)
	firstRecord, _ := repo.FindOne(context.Background(), specification.ByStudent{StudentID: student})
	firstCheckIn := *firstRecord.CheckInTime

	second, err := svc.ApplyFaceVerification(context.Background(), session, student, session.ScheduledStart.Add(40*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ApplyAlreadyMarked, second.Outcome)
	assert.Equal(t, entity.AttendancePresent, second.Status)

	record, _ := repo.FindOne(context.Background(), specification.ByStudent{StudentID: student})
	assert.Equal(t, entity.AttendancePresent, record.Status, "a later late sighting must not downgrade present")
	assert.Equal(t, firstCheckIn, *record.CheckInTime)
}

func TestApplyFaceVerification_ConcurrentCallsProduceOneTransition(t *testing.T) {
	svc, repo := attendanceFixture()
	session := activeSession()
	student := uuid.New()
	repo.seed(student)

	const callers = 16
	var wg sync.WaitGroup
	outcomes := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.ApplyFaceVerification(context.Background(), session, student, session.ScheduledStart)
			if err == nil {
				outcomes[i] = res.Outcome
			}
		}(i)
	}
	wg.Wait()

	transitions := 0
	for _, o := range outcomes {
		if o == ApplyTransitioned {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions, "exactly one caller wins the absent transition")
}

func TestApplyFaceVerification_MissingRecordReported(t *testing.T) {
	svc, _ := attendanceFixture()
	session := activeSession()

	res, err := svc.ApplyFaceVerification(context.Background(), session, uuid.New(), session.ScheduledStart)
	require.NoError(t, err)
	assert.Equal(t, ApplyRecordMissing, res.Outcome)
}

func TestApplyFaceVerification_RejectsZeroObservedTime(t *testing.T) {
	svc, repo := attendanceFixture()
	session := activeSession()
	student := uuid.New()
	repo.seed(student)

	_, err := svc.ApplyFaceVerification(context.Background(), session, student, time.Time{})
	assert.ErrorIs(t, err, ErrMissingTimestamp)

	record, _ := repo.FindOne(context.Background(), specification.ByStudent{StudentID: student})
	assert.Equal(t, entity.AttendanceAbsent, record.Status)
}

func TestOverride_SetsManualStatus(t *testing.T) {
	svc, repo := attendanceFixture()
	student := uuid.New()
	repo.seed(student)
	sessionId := uuid.New()

	err := svc.Override(context.Background(), &dto.OverrideAttendanceRequest{
		SessionId: sessionId,
		StudentId: student,
		Status:    entity.AttendanceExcused,
	})
	require.NoError(t, err)

	record, _ := repo.FindOne(context.Background(), specification.ByStudent{StudentID: student})
	assert.Equal(t, entity.AttendanceExcused, record.Status)
	assert.False(t, record.VerifiedByFace)
	assert.Nil(t, record.CheckInTime)
}

func TestOverride_UnknownRecord(t *testing.T) {
	svc, _ := attendanceFixture()

	err := svc.Override(context.Background(), &dto.OverrideAttendanceRequest{
		SessionId: uuid.New(),
		StudentId: uuid.New(),
		Status:    entity.AttendancePresent,
	})
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}
