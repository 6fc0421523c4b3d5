package http

import (
	"encoding/base64"
	"fmt"

	"voice-order-assistant/internal/model"
	"voice-order-assistant/internal/order"
)

// --- Request DTOs ---

type transcribeReq struct {
	Audio string `json:"audio" binding:"required"`
}

func (r transcribeReq) toInput() (order.TranscribeInput, error) {
	audio, err := base64.StdEncoding.DecodeString(r.Audio)
	if err != nil {
		return order.TranscribeInput{}, fmt.Errorf("audio is not valid base64: %w", err)
	}
	return order.TranscribeInput{Audio: audio}, nil
}

type detectIntentReq struct {
	Query      string `json:"query" binding:"required"`
	SessionID  string `json:"sessionId" binding:"required"`
	IsNewOrder bool   `json:"isNewOrder"`
}

func (r detectIntentReq) toInput() order.TurnInput {
	return order.TurnInput{
		Query:      r.Query,
		SessionID:  r.SessionID,
		IsNewOrder: r.IsNewOrder,
	}
}

type converseReq struct {
	Audio      string `json:"audio" binding:"required"`
	SessionID  string `json:"sessionId" binding:"required"`
	IsNewOrder bool   `json:"isNewOrder"`
}

func (r converseReq) toInput() (order.ConverseInput, error) {
	audio, err := base64.StdEncoding.DecodeString(r.Audio)
	if err != nil {
		return order.ConverseInput{}, fmt.Errorf("audio is not valid base64: %w", err)
	}
	return order.ConverseInput{
		Audio:      audio,
		SessionID:  r.SessionID,
		IsNewOrder: r.IsNewOrder,
	}, nil
}

type synthesizeReq struct {
	Text string `json:"text" binding:"required"`
}

func synthesizeInput(r synthesizeReq) order.SynthesizeInput {
	return order.SynthesizeInput{Text: r.Text}
}

// --- Response DTOs ---

type transcribeResp struct {
	Transcription string `json:"transcription"`
}

func newTranscribeResp(out order.TranscribeOutput) transcribeResp {
	return transcribeResp{Transcription: out.Transcription}
}

// detectIntentResp keeps the field names the browser client binds
// to: foodItems carries the whole item list and total is null until known.
type detectIntentResp struct {
	FulfillmentText  string            `json:"fulfillmentText"`
	FoodItems        []model.OrderItem `json:"foodItems"`
	Total            *float64          `json:"total"`
	NextTurnNewOrder bool              `json:"nextTurnIsNewOrder"`
}

func newDetectIntentResp(out order.TurnOutput) detectIntentResp {
	return detectIntentResp{
		FulfillmentText:  out.FulfillmentText,
		FoodItems:        out.Items,
		Total:            out.Total,
		NextTurnNewOrder: out.NextTurnNewOrder,
	}
}

type converseResp struct {
	Transcription string           `json:"transcription"`
	Turn          detectIntentResp `json:"turn"`
}

func newConverseResp(out order.ConverseOutput) converseResp {
	return converseResp{
		Transcription: out.Transcription,
		Turn:          newDetectIntentResp(out.Turn),
	}
}

type sessionResp struct {
	Items            []model.OrderItem `json:"items"`
	Total            *float64          `json:"total"`
	Turns            []model.Turn      `json:"turns"`
	NextTurnNewOrder bool              `json:"nextTurnIsNewOrder"`
}

func newSessionResp(out order.SessionOutput) sessionResp {
	return sessionResp{
		Items:            out.Items,
		Total:            out.Total,
		Turns:            out.Turns,
		NextTurnNewOrder: out.NextTurnNewOrder,
	}
}
