package speech

import "context"

// ISpeech defines the speech-to-text collaborator boundary.
// Implementations are safe for concurrent use.
type ISpeech interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
