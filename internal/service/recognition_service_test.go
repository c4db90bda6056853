package service

import (
	"context"
	"testing"
	"time"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/pkg/facematch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingAt(v float32) facematch.Embedding {
	e := make(facematch.Embedding, facematch.EncodingDim)
	e[0] = v
	return e
}

func activeSession() *entity.AttendanceSession {
	return &entity.AttendanceSession{
		Id:             uuid.New(),
		FichaId:        uuid.New(),
		ScheduledStart: time.Now().Add(-5 * time.Minute),
		ScheduledEnd:   time.Now().Add(2 * time.Hour),
		GraceMinutes:   10,
		IsActive:       true,
	}
}

type recognitionFixture struct {
	service    IRecognitionService
	session    *entity.AttendanceSession
	attendance *fakeAttendanceRepo
	cache      *fakeCache
	provider   *fakeProvider
	publisher  *fakePublisher
}

func newRecognitionFixture(session *entity.AttendanceSession, known []facematch.KnownEncoding, detections []facedetect.Detection) *recognitionFixture {
	attendanceRepo := newFakeAttendanceRepo()
	uow := &fakeUow{
		sessions:   &fakeSessionRepo{session: session},
		attendance: attendanceRepo,
		settings:   &fakeSettingsRepo{},
	}
	factory := &fakeFactory{uow: uow}
	cache := &fakeCache{known: known}
	provider := &fakeProvider{detections: detections}
	publisher := &fakePublisher{}

	attendanceService := NewAttendanceService(factory, NewGracePeriodPolicy(), nopLogger{})
	svc := NewRecognitionService(factory, cache, provider, attendanceService, publisher, nopLogger{})

	return &recognitionFixture{
		service:    svc,
		session:    session,
		attendance: attendanceRepo,
		cache:      cache,
		provider:   provider,
		publisher:  publisher,
	}
}

func TestRecognizeFrame_SessionMissing(t *testing.T) {
	f := newRecognitionFixture(nil, nil, nil)

	_, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: uuid.New()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecognizeFrame_SessionInactive(t *testing.T) {
	session := activeSession()
	session.IsActive = false
	f := newRecognitionFixture(session, nil, nil)

	_, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	assert.ErrorIs(t, err, ErrSessionInactive)
}

func TestRecognizeFrame_EmptyRosterSkipsDetection(t *testing.T) {
	session := activeSession()
	f := newRecognitionFixture(session, []facematch.KnownEncoding{}, nil)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	assert.Equal(t, dto.FrameNoActiveEncodings, res.Outcome)
	assert.Zero(t, res.FacesFound)
	assert.Empty(t, res.Detections)
	assert.Equal(t, 0, f.provider.calls, "detection must not run for an empty roster")
}

func TestRecognizeFrame_NoFaceDetected(t *testing.T) {
	session := activeSession()
	known := []facematch.KnownEncoding{{StudentId: uuid.New(), Encoding: embeddingAt(0)}}

	f := newRecognitionFixture(session, known, []facedetect.Detection{})

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	assert.Equal(t, dto.FrameNoFaceDetected, res.Outcome)
	assert.Zero(t, res.FacesFound)
	assert.Empty(t, res.Detections)
	assert.Equal(t, 1, f.publisher.count(), "empty frames still produce an audit event")
}

func TestRecognizeFrame_UniqueMatchMarksPresent(t *testing.T) {
	session := activeSession()
	student := uuid.New()
	known := []facematch.KnownEncoding{{StudentId: student, Encoding: embeddingAt(0)}}
	detections := []facedetect.Detection{{Embedding: embeddingAt(0)}}

	f := newRecognitionFixture(session, known, detections)
	f.attendance.seed(student)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	assert.Equal(t, dto.FrameProcessed, res.Outcome)
	require.Len(t, res.Detections, 1)
	d := res.Detections[0]
	assert.Equal(t, "matched", d.Outcome)
	require.NotNil(t, d.StudentId)
	assert.Equal(t, student, *d.StudentId)
	assert.Equal(t, entity.AttendancePresent, d.Status)
	assert.Equal(t, 1, f.publisher.count())
}

func TestRecognizeFrame_LateArrivalMarksLate(t *testing.T) {
	session := activeSession()
	session.ScheduledStart = time.Now().Add(-30 * time.Minute) // grace long expired
	student := uuid.New()
	known := []facematch.KnownEncoding{{StudentId: student, Encoding: embeddingAt(0)}}
	detections := []facedetect.Detection{{Embedding: embeddingAt(0)}}

	f := newRecognitionFixture(session, known, detections)
	f.attendance.seed(student)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	require.Len(t, res.Detections, 1)
	assert.Equal(t, "matched", res.Detections[0].Outcome)
	assert.Equal(t, entity.AttendanceLate, res.Detections[0].Status)
}

func TestRecognizeFrame_DuplicateFrameIsIdempotent(t *testing.T) {
	session := activeSession()
	student := uuid.New()
	known := []facematch.KnownEncoding{{StudentId: student, Encoding: embeddingAt(0)}}
	detections := []facedetect.Detection{{Embedding: embeddingAt(0)}}

	f := newRecognitionFixture(session, known, detections)
	f.attendance.seed(student)

	first, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)
	assert.Equal(t, "matched", first.Detections[0].Outcome)

	second, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)
	assert.Equal(t, "already_marked", second.Detections[0].Outcome)
	assert.Equal(t, entity.AttendancePresent, second.Detections[0].Status)
}

func TestRecognizeFrame_AmbiguousLeavesRecordsUntouched(t *testing.T) {
	session := activeSession()
	studentA := uuid.New()
	studentB := uuid.New()
	// Both encodings sit inside the threshold band around the detection.
	known := []facematch.KnownEncoding{
		{StudentId: studentA, Encoding: embeddingAt(0)},
		{StudentId: studentB, Encoding: embeddingAt(0.1)},
	}
	detections := []facedetect.Detection{{Embedding: embeddingAt(0)}}

	f := newRecognitionFixture(session, known, detections)
	f.attendance.seed(studentA)
	f.attendance.seed(studentB)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	require.Len(t, res.Detections, 1)
	assert.Equal(t, "ambiguous", res.Detections[0].Outcome)
	assert.Equal(t, 2, res.Detections[0].Candidates)
	assert.Nil(t, res.Detections[0].StudentId)

	records, _ := f.attendance.FindAll(context.Background())
	for _, rec := range records {
		assert.Equal(t, entity.AttendanceAbsent, rec.Status, "ambiguity must never mutate attendance")
	}
}

func TestRecognizeFrame_NoMatchReportsClosestDistance(t *testing.T) {
	session := activeSession()
	known := []facematch.KnownEncoding{{StudentId: uuid.New(), Encoding: embeddingAt(0)}}
	detections := []facedetect.Detection{{Embedding: embeddingAt(50)}}

	f := newRecognitionFixture(session, known, detections)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	require.Len(t, res.Detections, 1)
	d := res.Detections[0]
	assert.Equal(t, "no_match", d.Outcome)
	require.NotNil(t, d.Distance)
	assert.InDelta(t, 50.0, *d.Distance, 1e-6)
}

func TestRecognizeFrame_MultipleFacesResolvedIndependently(t *testing.T) {
	session := activeSession()
	studentA := uuid.New()
	studentB := uuid.New()
	known := []facematch.KnownEncoding{
		{StudentId: studentA, Encoding: embeddingAt(0)},
		{StudentId: studentB, Encoding: embeddingAt(10)},
	}
	detections := []facedetect.Detection{
		{Embedding: embeddingAt(0)},
		{Embedding: embeddingAt(10)},
		{Embedding: embeddingAt(50)},
	}

	f := newRecognitionFixture(session, known, detections)
	f.attendance.seed(studentA)
	f.attendance.seed(studentB)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	require.Len(t, res.Detections, 3)
	assert.Equal(t, 3, res.FacesFound)
	assert.Equal(t, "matched", res.Detections[0].Outcome)
	assert.Equal(t, "matched", res.Detections[1].Outcome)
	assert.Equal(t, "no_match", res.Detections[2].Outcome)
	assert.Equal(t, 3, f.publisher.count())
}

func TestRecognizeFrame_MatchedStudentWithoutSeedRow(t *testing.T) {
	session := activeSession()
	student := uuid.New()
	known := []facematch.KnownEncoding{{StudentId: student, Encoding: embeddingAt(0)}}
	detections := []facedetect.Detection{{Embedding: embeddingAt(0)}}

	// No seed: the roster changed after the session was scheduled.
	f := newRecognitionFixture(session, known, detections)

	res, err := f.service.RecognizeFrame(context.Background(), &dto.RecognizeFrameRequest{SessionId: session.Id})
	require.NoError(t, err)

	require.Len(t, res.Detections, 1)
	assert.Equal(t, "record_missing", res.Detections[0].Outcome)
}
