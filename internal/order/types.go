package order

import "voice-order-assistant/internal/model"

// TranscribeInput carries the raw (already base64-decoded) audio bytes.
type TranscribeInput struct {
	Audio []byte
}

type TranscribeOutput struct {
	Transcription string
}

// TurnInput is one conversational turn. IsNewOrder discards the session's
// accumulated order before processing (the "payment completed, begin fresh
// order" signal from the client).
type TurnInput struct {
	Query      string
	SessionID  string
	IsNewOrder bool
}

// TurnOutput is the consolidated per-turn response. NextTurnNewOrder mirrors
// the server-side pending flag so clients need not sniff fulfillment text.
type TurnOutput struct {
	FulfillmentText  string
	Items            []model.OrderItem
	Total            *float64
	NextTurnNewOrder bool
}

// ConverseInput runs transcription and intent detection as one pipeline.
type ConverseInput struct {
	Audio      []byte
	SessionID  string
	IsNewOrder bool
}

type ConverseOutput struct {
	Transcription string
	Turn          TurnOutput
}

type SynthesizeInput struct {
	Text string
}

type SynthesizeOutput struct {
	Audio       []byte
	ContentType string
}

// SessionOutput is the full session view, turns newest first.
type SessionOutput struct {
	Items            []model.OrderItem
	Total            *float64
	Turns            []model.Turn
	NextTurnNewOrder bool
}
