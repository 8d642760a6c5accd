package repository

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the text-generation service failed its
// connectivity probe. It is fatal and never retried.
var ErrUnavailable = errors.New("text-generation service unavailable")

// ErrNoResponse indicates every retry attempt against the text-generation
// service failed. Callers must treat it as a first-class outcome.
var ErrNoResponse = errors.New("no response from text-generation service")

// AIRepository is a client for a text-generation backend.
type AIRepository interface {
	// Generate sends a prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
