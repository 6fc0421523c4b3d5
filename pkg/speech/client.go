package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	speechapi "google.golang.org/api/speech/v1"
	"google.golang.org/api/option"
)

// Recognition settings for browser-captured voice audio. The client records
// with the MediaRecorder default codec, which is Opus in a WebM container.
const (
	DefaultEncoding     = "WEBM_OPUS"
	DefaultSampleRate   = 48000
	DefaultLanguageCode = "en-US"
)

// Client wraps the Google Cloud Speech-to-Text v1 API.
type Client struct {
	service      *speechapi.Service
	encoding     string
	sampleRate   int64
	languageCode string
}

// NewClientFromCredentialsFile creates a Speech client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, speechapi.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	return NewClient(ctx, option.WithTokenSource(config.TokenSource(ctx)))
}

// NewClient creates a Speech client with explicit client options.
// Tests pass option.WithoutAuthentication and option.WithEndpoint here.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := speechapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech service: %w", err)
	}
	return &Client{
		service:      svc,
		encoding:     DefaultEncoding,
		sampleRate:   DefaultSampleRate,
		languageCode: DefaultLanguageCode,
	}, nil
}

// WithLanguageCode overrides the recognition locale.
func (c *Client) WithLanguageCode(languageCode string) *Client {
	c.languageCode = languageCode
	return c
}

// Transcribe runs synchronous recognition on the given audio bytes and
// returns the transcript, joining multi-segment results with newlines.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio provided")
	}

	req := &speechapi.RecognizeRequest{
		Audio: &speechapi.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
		Config: &speechapi.RecognitionConfig{
			Encoding:        c.encoding,
			SampleRateHertz: c.sampleRate,
			LanguageCode:    c.languageCode,
		},
	}

	resp, err := c.service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to call speech API: %w", err)
	}

	parts := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		parts = append(parts, result.Alternatives[0].Transcript)
	}

	return strings.Join(parts, "\n"), nil
}
