package facematch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingAt builds a 128-dim embedding whose first component is v and the
// rest zero, so euclidean distance between two of them is |v1-v2|.
func embeddingAt(v float32) Embedding {
	e := make(Embedding, EncodingDim)
	e[0] = v
	return e
}

func TestResolveNoMatchReportsMinDistance(t *testing.T) {
	known := []KnownEncoding{
		{StudentId: uuid.New(), Encoding: embeddingAt(2.0)},
		{StudentId: uuid.New(), Encoding: embeddingAt(5.0)},
	}

	outcome, err := Resolve(Euclidean{}, embeddingAt(0), known, 0.6)
	require.NoError(t, err)

	assert.Equal(t, MatchNone, outcome.Kind)
	assert.InDelta(t, 2.0, outcome.MinDistance, 1e-6)
	assert.Empty(t, outcome.Candidates)
}

func TestResolveUniqueMatch(t *testing.T) {
	target := uuid.New()
	known := []KnownEncoding{
		{StudentId: target, Encoding: embeddingAt(0.3)},
		{StudentId: uuid.New(), Encoding: embeddingAt(4.0)},
	}

	outcome, err := Resolve(Euclidean{}, embeddingAt(0), known, 0.6)
	require.NoError(t, err)

	assert.Equal(t, MatchUnique, outcome.Kind)
	assert.Equal(t, target, outcome.StudentId)
	assert.InDelta(t, 0.3, outcome.Distance, 1e-6)
}

func TestResolveDistanceEqualToThresholdIsInBand(t *testing.T) {
	target := uuid.New()
	known := []KnownEncoding{{StudentId: target, Encoding: embeddingAt(0.6)}}

	outcome, err := Resolve(Euclidean{}, embeddingAt(0), known, 0.6)
	require.NoError(t, err)

	assert.Equal(t, MatchUnique, outcome.Kind)
	assert.Equal(t, target, outcome.StudentId)
}

func TestResolveAmbiguousKeepsAllCandidates(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	known := []KnownEncoding{
		{StudentId: a, Encoding: embeddingAt(0.2)},
		{StudentId: b, Encoding: embeddingAt(0.4)},
		{StudentId: uuid.New(), Encoding: embeddingAt(3.0)},
	}

	outcome, err := Resolve(Euclidean{}, embeddingAt(0), known, 0.6)
	require.NoError(t, err)

	assert.Equal(t, MatchAmbiguous, outcome.Kind)
	require.Len(t, outcome.Candidates, 2)
	ids := []uuid.UUID{outcome.Candidates[0].StudentId, outcome.Candidates[1].StudentId}
	assert.Contains(t, ids, a)
	assert.Contains(t, ids, b)
	// Ambiguity is never collapsed to the closest candidate.
	assert.Equal(t, uuid.Nil, outcome.StudentId)
}

func TestResolveEmptyKnownSet(t *testing.T) {
	outcome, err := Resolve(Euclidean{}, embeddingAt(0), nil, 0.6)
	require.NoError(t, err)
	assert.Equal(t, MatchNone, outcome.Kind)
}

func TestResolveDimensionMismatch(t *testing.T) {
	known := []KnownEncoding{{StudentId: uuid.New(), Encoding: make(Embedding, 64)}}
	_, err := Resolve(Euclidean{}, embeddingAt(0), known, 0.6)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosineDistance(t *testing.T) {
	a := make(Embedding, EncodingDim)
	b := make(Embedding, EncodingDim)
	a[0], b[1] = 1, 1 // orthogonal

	d, err := Cosine{}.Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-6)

	same, err := Cosine{}.Distance(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, same, 1e-6)
}

func TestNewMetric(t *testing.T) {
	assert.Equal(t, "euclidean", NewMetric("euclidean").Name())
	assert.Equal(t, "cosine", NewMetric("cosine").Name())
	assert.Equal(t, "euclidean", NewMetric("").Name())
}

func TestEmbeddingValidate(t *testing.T) {
	assert.NoError(t, embeddingAt(0).Validate())
	assert.ErrorIs(t, Embedding(make([]float32, 10)).Validate(), ErrDimensionMismatch)
}
