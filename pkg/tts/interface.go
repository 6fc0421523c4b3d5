package tts

import "context"

// ITTS defines the text-to-speech collaborator boundary.
// Implementations are safe for concurrent use.
type ITTS interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
