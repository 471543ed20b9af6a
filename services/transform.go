package services

import (
	"context"
	"time"
)

// SketchTransformer turns raw sketch bytes (PNG or JPEG) into PNG bytes of
// a photorealistic rendering. A real implementation calls an external image
// provider and must bring its own timeout and retry policy.
type SketchTransformer interface {
	Transform(ctx context.Context, sketch []byte) ([]byte, error)
}

// StubTransformer echoes the input back after a short simulated latency.
// It stands in until a real provider integration exists.
type StubTransformer struct {
	latency time.Duration
}

func NewStubTransformer() *StubTransformer {
	return &StubTransformer{latency: 50 * time.Millisecond}
}

func (t *StubTransformer) Transform(ctx context.Context, sketch []byte) ([]byte, error) {
	select {
	case <-time.After(t.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return sketch, nil
}
