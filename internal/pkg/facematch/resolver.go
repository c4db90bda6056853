package facematch

import (
	"math"

	"github.com/google/uuid"
)

type MatchKind string

const (
	MatchUnique    MatchKind = "unique"
	MatchAmbiguous MatchKind = "ambiguous"
	MatchNone      MatchKind = "no_match"
)

// Candidate is one known encoding that fell inside the match band.
type Candidate struct {
	StudentId uuid.UUID
	Distance  float64
}

// MatchOutcome is the resolution of one detection against a known set.
// Exactly one of the three shapes applies:
//   - Unique: StudentId and Distance are set
//   - Ambiguous: Candidates holds every in-band student with its distance
//   - NoMatch: MinDistance holds the closest observed distance
type MatchOutcome struct {
	Kind        MatchKind
	StudentId   uuid.UUID
	Distance    float64
	Candidates  []Candidate
	MinDistance float64
}

// Resolve compares one detected embedding against every known encoding.
// Known encodings within threshold form the candidate set; a single
// candidate is a unique match, two or more are reported as ambiguous and
// deliberately left unresolved: crediting the closest face risks marking
// the wrong student present.
func Resolve(metric DistanceMetric, detection Embedding, known []KnownEncoding, threshold float64) (MatchOutcome, error) {
	var candidates []Candidate
	minDistance := math.Inf(1)

	for _, k := range known {
		d, err := metric.Distance(detection, k.Encoding)
		if err != nil {
			return MatchOutcome{}, err
		}
		if d < minDistance {
			minDistance = d
		}
		if metric.Within(d, threshold) {
			candidates = append(candidates, Candidate{StudentId: k.StudentId, Distance: d})
		}
	}

	switch len(candidates) {
	case 0:
		return MatchOutcome{Kind: MatchNone, MinDistance: minDistance}, nil
	case 1:
		return MatchOutcome{
			Kind:      MatchUnique,
			StudentId: candidates[0].StudentId,
			Distance:  candidates[0].Distance,
		}, nil
	default:
		return MatchOutcome{Kind: MatchAmbiguous, Candidates: candidates}, nil
	}
}
