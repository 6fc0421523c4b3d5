package usecase

import (
	"voice-order-assistant/internal/order/repository"
	"voice-order-assistant/pkg/dialogflow"
	pkgLog "voice-order-assistant/pkg/log"
	"voice-order-assistant/pkg/speech"
	"voice-order-assistant/pkg/tts"
)

type implUseCase struct {
	l       pkgLog.Logger
	speech  speech.ISpeech
	intents dialogflow.IDialogflow
	tts     tts.ITTS
	repo    repository.SessionRepository
}

// New creates a new order UseCase instance.
func New(
	l pkgLog.Logger,
	speechClient speech.ISpeech,
	intentClient dialogflow.IDialogflow,
	ttsClient tts.ITTS,
	repo repository.SessionRepository,
) *implUseCase {
	return &implUseCase{
		l:       l,
		speech:  speechClient,
		intents: intentClient,
		tts:     ttsClient,
		repo:    repo,
	}
}
