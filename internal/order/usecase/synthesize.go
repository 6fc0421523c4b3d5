package usecase

import (
	"context"
	"fmt"
	"strings"

	"voice-order-assistant/internal/order"
	"voice-order-assistant/pkg/tts"
)

// Synthesize renders the fulfillment text as MP3 audio.
func (uc *implUseCase) Synthesize(ctx context.Context, input order.SynthesizeInput) (order.SynthesizeOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return order.SynthesizeOutput{}, order.ErrEmptyText
	}

	audio, err := uc.tts.Synthesize(ctx, input.Text)
	if err != nil {
		return order.SynthesizeOutput{}, fmt.Errorf("speech synthesis failed: %w", err)
	}

	return order.SynthesizeOutput{
		Audio:       audio,
		ContentType: tts.ContentType,
	}, nil
}
