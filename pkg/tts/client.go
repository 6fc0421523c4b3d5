package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

const (
	DefaultLanguageCode = "en-US"
	DefaultVoiceGender  = "NEUTRAL"
	DefaultEncoding     = "MP3"
)

// ContentType is the MIME type of the synthesized audio.
const ContentType = "audio/mpeg"

// Client wraps the Google Cloud Text-to-Speech v1 API.
type Client struct {
	service      *texttospeech.Service
	languageCode string
	voiceGender  string
}

// NewClientFromCredentialsFile creates a TTS client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, texttospeech.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	return NewClient(ctx, option.WithTokenSource(config.TokenSource(ctx)))
}

// NewClient creates a TTS client with explicit client options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create texttospeech service: %w", err)
	}
	return &Client{
		service:      svc,
		languageCode: DefaultLanguageCode,
		voiceGender:  DefaultVoiceGender,
	}, nil
}

// WithLanguageCode overrides the synthesis locale.
func (c *Client) WithLanguageCode(languageCode string) *Client {
	c.languageCode = languageCode
	return c
}

// Synthesize renders the given text as MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("no text provided")
	}

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: c.languageCode,
			SsmlGender:   c.voiceGender,
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: DefaultEncoding},
	}

	resp, err := c.service.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to call texttospeech API: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio content: %w", err)
	}

	return audio, nil
}
