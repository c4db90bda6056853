package facematch

import (
	"fmt"

	"github.com/google/uuid"
)

// EncodingDim is the output dimension of the face embedding model.
const EncodingDim = 128

// Embedding is one fixed-length face feature vector. Immutable once produced.
type Embedding []float32

func (e Embedding) Validate() error {
	if len(e) != EncodingDim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(e), EncodingDim)
	}
	return nil
}

// KnownEncoding pairs an enrolled student with one of their active embeddings.
type KnownEncoding struct {
	StudentId uuid.UUID
	Encoding  Embedding
}
