package usecase

import (
	"context"
	"fmt"
	"strings"

	"voice-order-assistant/internal/model"
	"voice-order-assistant/internal/order"
)

// turnState tracks where a turn is in its per-session pipeline.
type turnState string

const (
	stateIdle               turnState = "IDLE"
	stateAwaitingTranscript turnState = "AWAITING_TRANSCRIPT"
	stateAwaitingIntent     turnState = "AWAITING_INTENT"
)

// Markers the agent embeds in fulfillment text. The agent
// reports failures with a literal lowercase "error"; payment wording marks
// checkout completion and means the next turn starts a fresh order. Both
// checks are case-sensitive to match what the agent actually returns.
const (
	errorMarker   = "error"
	paymentMarker = "payment"
)

func isPaymentComplete(fulfillmentText string) bool {
	return strings.Contains(fulfillmentText, paymentMarker)
}

// ProcessTurn runs one conversational turn against the intent collaborator
// and merges the outcome into the session. Session state is only published
// after every step succeeded, so an aborted turn leaves it untouched.
func (uc *implUseCase) ProcessTurn(ctx context.Context, input order.TurnInput) (order.TurnOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return order.TurnOutput{}, order.ErrEmptyQuery
	}
	if input.SessionID == "" {
		return order.TurnOutput{}, order.ErrEmptySessionID
	}

	sess, err := uc.repo.GetOrCreate(ctx, input.SessionID)
	if err != nil {
		return order.TurnOutput{}, fmt.Errorf("failed to load session: %w", err)
	}

	// The reset fires before anything else when the client flags a new order
	// or the previous turn completed payment. The reset itself stands even if
	// a later step aborts this turn.
	if input.IsNewOrder || sess.NextTurnNewOrder {
		sess, err = uc.repo.Reset(ctx, input.SessionID)
		if err != nil {
			return order.TurnOutput{}, fmt.Errorf("failed to reset session: %w", err)
		}
		uc.l.Infof(ctx, "ProcessTurn: session %s reset for new order", input.SessionID)
	}

	uc.l.Debugf(ctx, "ProcessTurn: session %s state %s -> %s", input.SessionID, stateIdle, stateAwaitingIntent)

	result, err := uc.intents.DetectIntent(ctx, input.SessionID, input.Query)
	if err != nil {
		return order.TurnOutput{}, fmt.Errorf("intent detection failed: %w", err)
	}

	// The agent signaled a handling error: hand back the current order
	// unchanged, no retry, nothing saved.
	if strings.Contains(result.FulfillmentText, errorMarker) {
		uc.l.Warnf(ctx, "ProcessTurn: session %s agent error: %s", input.SessionID, result.FulfillmentText)
		return order.TurnOutput{
			FulfillmentText:  result.FulfillmentText,
			Items:            sess.Items,
			Total:            sess.Total,
			NextTurnNewOrder: sess.NextTurnNewOrder,
		}, nil
	}

	updated, err := uc.applyIntentResult(sess, result)
	if err != nil {
		return order.TurnOutput{}, err
	}

	fulfillment := result.FulfillmentText
	updated.Turns = append([]model.Turn{{Prompt: input.Query, FulfillmentText: &fulfillment}}, updated.Turns...)

	// Payment completed on this turn: the next turn starts a fresh order.
	// This turn's items and total are returned as accumulated.
	if isPaymentComplete(result.FulfillmentText) {
		updated.NextTurnNewOrder = true
		uc.l.Infof(ctx, "ProcessTurn: session %s payment detected, next turn starts a new order", input.SessionID)
	}

	if err := uc.repo.Save(ctx, input.SessionID, updated); err != nil {
		return order.TurnOutput{}, fmt.Errorf("failed to save session: %w", err)
	}

	uc.l.Debugf(ctx, "ProcessTurn: session %s state %s -> %s", input.SessionID, stateAwaitingIntent, stateIdle)

	return order.TurnOutput{
		FulfillmentText:  result.FulfillmentText,
		Items:            updated.Items,
		Total:            updated.Total,
		NextTurnNewOrder: updated.NextTurnNewOrder,
	}, nil
}

// Converse runs the full pipeline for captured audio: transcribe, then
// process the transcript as a turn. A failure in either stage aborts the
// turn without touching the session.
func (uc *implUseCase) Converse(ctx context.Context, input order.ConverseInput) (order.ConverseOutput, error) {
	if len(input.Audio) == 0 {
		return order.ConverseOutput{}, order.ErrEmptyAudio
	}
	if input.SessionID == "" {
		return order.ConverseOutput{}, order.ErrEmptySessionID
	}

	uc.l.Debugf(ctx, "Converse: session %s state %s -> %s", input.SessionID, stateIdle, stateAwaitingTranscript)

	transcript, err := uc.speech.Transcribe(ctx, input.Audio)
	if err != nil {
		return order.ConverseOutput{}, fmt.Errorf("transcription failed: %w", err)
	}

	turnOut, err := uc.ProcessTurn(ctx, order.TurnInput{
		Query:      transcript,
		SessionID:  input.SessionID,
		IsNewOrder: input.IsNewOrder,
	})
	if err != nil {
		return order.ConverseOutput{}, err
	}

	return order.ConverseOutput{
		Transcription: transcript,
		Turn:          turnOut,
	}, nil
}

// SessionDetail returns the accumulated order and turn history for a session.
func (uc *implUseCase) SessionDetail(ctx context.Context, sessionID string) (order.SessionOutput, error) {
	if sessionID == "" {
		return order.SessionOutput{}, order.ErrEmptySessionID
	}

	sess, err := uc.repo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return order.SessionOutput{}, fmt.Errorf("failed to load session: %w", err)
	}

	return order.SessionOutput{
		Items:            sess.Items,
		Total:            sess.Total,
		Turns:            sess.Turns,
		NextTurnNewOrder: sess.NextTurnNewOrder,
	}, nil
}
