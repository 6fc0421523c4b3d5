package order

import "context"

// UseCase defines the business logic interface for the voice ordering domain.
type UseCase interface {
	// Transcribe converts captured voice audio into text.
	Transcribe(ctx context.Context, input TranscribeInput) (TranscribeOutput, error)

	// ProcessTurn runs one conversational turn: detect intent for the query,
	// merge the structured order payload into the session, and return the
	// accumulated order alongside the fulfillment text.
	ProcessTurn(ctx context.Context, input TurnInput) (TurnOutput, error)

	// Converse runs the full per-turn pipeline: transcribe the audio, then
	// process the transcript as a turn.
	Converse(ctx context.Context, input ConverseInput) (ConverseOutput, error)

	// Synthesize renders response text as speech audio.
	Synthesize(ctx context.Context, input SynthesizeInput) (SynthesizeOutput, error)

	// SessionDetail returns the current accumulated order for a session.
	SessionDetail(ctx context.Context, sessionID string) (SessionOutput, error)
}
