package service

import (
	"context"
	"sync"
	"time"

	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/repository/contract"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeUow wires hand-rolled repository fakes behind the UnitOfWork interface.
// Accessors for repositories a test does not configure return nil, so an
// unexpected call fails loudly.
type fakeUow struct {
	sessions   contract.AttendanceSessionRepository
	attendance contract.AttendanceRepository
	settings   contract.RecognitionSettingsRepository
	users      contract.UserRepository
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return u.users }
func (u *fakeUow) FichaRepository() contract.FichaRepository {
	return nil
}
func (u *fakeUow) AttendanceSessionRepository() contract.AttendanceSessionRepository {
	return u.sessions
}
func (u *fakeUow) AttendanceRepository() contract.AttendanceRepository { return u.attendance }
func (u *fakeUow) FaceEncodingRepository() contract.FaceEncodingRepository {
	return nil
}
func (u *fakeUow) FaceVerificationLogRepository() contract.FaceVerificationLogRepository {
	return nil
}
func (u *fakeUow) RecognitionSettingsRepository() contract.RecognitionSettingsRepository {
	return u.settings
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeSessionRepo struct {
	session *entity.AttendanceSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.AttendanceSession) error {
	return nil
}
func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.AttendanceSession) error {
	return nil
}
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AttendanceSession, error) {
	return r.session, nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AttendanceSession, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	settings *entity.RecognitionSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.RecognitionSettings, error) {
	if r.settings == nil {
		return entity.DefaultRecognitionSettings(), nil
	}
	return r.settings, nil
}
func (r *fakeSettingsRepo) Save(ctx context.Context, settings *entity.RecognitionSettings) error {
	return nil
}

// fakeAttendanceRepo emulates the guarded absent transition in memory.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*entity.Attendance // keyed by student id
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[uuid.UUID]*entity.Attendance{}}
}

func (r *fakeAttendanceRepo) seed(studentId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[studentId] = &entity.Attendance{
		Id:        uuid.New(),
		StudentId: studentId,
		Status:    entity.AttendanceAbsent,
	}
}

func (r *fakeAttendanceRepo) CreateBulk(ctx context.Context, records []*entity.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.StudentId] = rec
	}
	return nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, record *entity.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.StudentId] = record
	return nil
}

func (r *fakeAttendanceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Specification filtering happens in SQL for the real repository; the
	// fake holds one session's records keyed by student, so the last ByStudent
	// spec decides.
	for _, spec := range specs {
		if byStudent, ok := spec.(specification.ByStudent); ok {
			if rec, found := r.records[byStudent.StudentID]; found {
				copied := *rec
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Attendance, 0, len(r.records))
	for _, rec := range r.records {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) TransitionFromAbsent(ctx context.Context, sessionId, studentId uuid.UUID, status string, checkIn time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, found := r.records[studentId]
	if !found || rec.Status != entity.AttendanceAbsent {
		return false, nil
	}
	rec.Status = status
	rec.CheckInTime = &checkIn
	rec.VerifiedByFace = true
	return true, nil
}

type fakeCache struct {
	known []facematch.KnownEncoding
	err   error
	calls int
}

func (c *fakeCache) EnsureWarm(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error) {
	c.calls++
	return c.known, c.err
}

type fakeProvider struct {
	detections []facedetect.Detection
	detectErr  error
	calls      int
}

func (p *fakeProvider) DetectFaces(ctx context.Context, image []byte, model string) ([]facedetect.Detection, error) {
	p.calls++
	return p.detections, p.detectErr
}

func (p *fakeProvider) Embed(ctx context.Context, image []byte) (facematch.Embedding, error) {
	return nil, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}
