package usecase

import (
	"context"
	"fmt"

	"voice-order-assistant/internal/order"
)

// Transcribe converts captured voice audio into text.
func (uc *implUseCase) Transcribe(ctx context.Context, input order.TranscribeInput) (order.TranscribeOutput, error) {
	if len(input.Audio) == 0 {
		return order.TranscribeOutput{}, order.ErrEmptyAudio
	}

	transcript, err := uc.speech.Transcribe(ctx, input.Audio)
	if err != nil {
		return order.TranscribeOutput{}, fmt.Errorf("transcription failed: %w", err)
	}

	uc.l.Infof(ctx, "Transcribe: %d bytes -> %d chars", len(input.Audio), len(transcript))

	return order.TranscribeOutput{Transcription: transcript}, nil
}
