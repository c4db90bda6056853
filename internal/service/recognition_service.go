package service

import (
	"context"
	"encoding/json"
	"time"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/specification"
	"facelog-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IEncodingCache is the slice of the ficha encoding cache the orchestrator
// needs.
type IEncodingCache interface {
	EnsureWarm(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error)
}

type IRecognitionService interface {
	// RecognizeFrame runs one camera frame through detection and matching and
	// applies any unique matches to the session's attendance records.
	RecognizeFrame(ctx context.Context, req *dto.RecognizeFrameRequest) (*dto.RecognizeFrameResponse, error)
}

type recognitionService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      IEncodingCache
	provider   facedetect.Provider
	attendance IAttendanceService
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewRecognitionService(
	uowFactory unitofwork.RepositoryFactory,
	cache IEncodingCache,
	provider facedetect.Provider,
	attendance IAttendanceService,
	publisher IPublisherService,
	log logger.ILogger,
) IRecognitionService {
	return &recognitionService{
		uowFactory: uowFactory,
		cache:      cache,
		provider:   provider,
		attendance: attendance,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *recognitionService) RecognizeFrame(ctx context.Context, req *dto.RecognizeFrameRequest) (*dto.RecognizeFrameResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.AttendanceSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive {
		return nil, ErrSessionInactive
	}

	settings, err := uow.RecognitionSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	known, err := s.cache.EnsureWarm(ctx, session.FichaId)
	if err != nil {
		return nil, err
	}

	observed := time.Now()
	res := &dto.RecognizeFrameResponse{
		SessionId:   session.Id,
		Outcome:     dto.FrameProcessed,
		Detections:  []dto.DetectionResult{},
		ProcessedAt: observed,
	}

	// Nobody enrolled with an active encoding means no detection can ever
	// match, so skip the detection call entirely.
	if len(known) == 0 {
		s.logger.Info("recognition", "skipping frame, ficha has no active encodings", map[string]interface{}{
			"sessionId": session.Id.String(),
			"fichaId":   session.FichaId.String(),
		})
		res.Outcome = dto.FrameNoActiveEncodings
		return res, nil
	}

	detections, err := s.provider.DetectFaces(ctx, req.Image, settings.DetectionModel)
	if err != nil {
		return nil, err
	}
	res.FacesFound = len(detections)

	if len(detections) == 0 {
		res.Outcome = dto.FrameNoFaceDetected
		s.publishOutcome(ctx, dto.RecognitionOutcomeMessage{
			SessionId:  session.Id,
			Outcome:    entity.VerificationNoFace,
			ObservedAt: observed,
		})
		return res, nil
	}

	metric := facematch.NewMetric(settings.DistanceMetric)
	for _, detection := range detections {
		result, err := s.resolveDetection(ctx, session, metric, detection.Embedding, known, settings.Threshold, observed)
		if err != nil {
			return nil, err
		}
		res.Detections = append(res.Detections, result)
	}
	return res, nil
}

// resolveDetection handles one face independently: other faces in the same
// frame never influence its outcome.
func (s *recognitionService) resolveDetection(
	ctx context.Context,
	session *entity.AttendanceSession,
	metric facematch.DistanceMetric,
	embedding facematch.Embedding,
	known []facematch.KnownEncoding,
	threshold float64,
	observed time.Time,
) (dto.DetectionResult, error) {
	outcome, err := facematch.Resolve(metric, embedding, known, threshold)
	if err != nil {
		return dto.DetectionResult{}, err
	}

	switch outcome.Kind {
	case facematch.MatchUnique:
		applied, err := s.attendance.ApplyFaceVerification(ctx, session, outcome.StudentId, observed)
		if err != nil {
			return dto.DetectionResult{}, err
		}
		result := dto.DetectionResult{
			StudentId: &outcome.StudentId,
			Distance:  &outcome.Distance,
		}
		switch applied.Outcome {
		case ApplyTransitioned:
			result.Outcome = "matched"
			result.Status = applied.Status
		case ApplyAlreadyMarked:
			result.Outcome = "already_marked"
			result.Status = applied.Status
		case ApplyRecordMissing:
			result.Outcome = "record_missing"
		}
		s.publishOutcome(ctx, dto.RecognitionOutcomeMessage{
			SessionId:  session.Id,
			StudentId:  &outcome.StudentId,
			Outcome:    entity.VerificationMatched,
			Distance:   &outcome.Distance,
			ObservedAt: observed,
			Details:    map[string]interface{}{"applied": applied.Outcome},
		})
		return result, nil

	case facematch.MatchAmbiguous:
		// Never guess between in-band candidates; surface the collision and
		// leave every record untouched.
		candidateIds := make([]string, len(outcome.Candidates))
		for i, c := range outcome.Candidates {
			candidateIds[i] = c.StudentId.String()
		}
		s.logger.Warn("recognition", "ambiguous detection left unresolved", map[string]interface{}{
			"sessionId":  session.Id.String(),
			"candidates": candidateIds,
		})
		s.publishOutcome(ctx, dto.RecognitionOutcomeMessage{
			SessionId:  session.Id,
			Outcome:    entity.VerificationAmbiguous,
			ObservedAt: observed,
			Details:    map[string]interface{}{"candidates": candidateIds},
		})
		return dto.DetectionResult{
			Outcome:    "ambiguous",
			Candidates: len(outcome.Candidates),
		}, nil

	default:
		s.publishOutcome(ctx, dto.RecognitionOutcomeMessage{
			SessionId:  session.Id,
			Outcome:    entity.VerificationNoMatch,
			Distance:   &outcome.MinDistance,
			ObservedAt: observed,
		})
		return dto.DetectionResult{
			Outcome:  "no_match",
			Distance: &outcome.MinDistance,
		}, nil
	}
}

// publishOutcome is best effort: a full bus must not fail the frame.
func (s *recognitionService) publishOutcome(ctx context.Context, msg dto.RecognitionOutcomeMessage) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("recognition", "failed to publish recognition outcome", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
