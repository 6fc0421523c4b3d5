package dialogflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	dialogflowapi "google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/option"
)

const DefaultLanguageCode = "en"

// Client wraps the Dialogflow ES v2 sessions API for one agent project.
type Client struct {
	service      *dialogflowapi.Service
	projectID    string
	languageCode string
}

// NewClientFromCredentialsFile creates a Dialogflow client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, projectID string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, dialogflowapi.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	return NewClient(ctx, projectID, option.WithTokenSource(config.TokenSource(ctx)))
}

// NewClient creates a Dialogflow client with explicit client options.
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	svc, err := dialogflowapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialogflow service: %w", err)
	}
	return &Client{
		service:      svc,
		projectID:    projectID,
		languageCode: DefaultLanguageCode,
	}, nil
}

// WithLanguageCode overrides the query locale.
func (c *Client) WithLanguageCode(languageCode string) *Client {
	c.languageCode = languageCode
	return c
}

// SessionPath builds the agent session resource name for a session id.
func (c *Client) SessionPath(sessionID string) string {
	return fmt.Sprintf("projects/%s/agent/sessions/%s", c.projectID, sessionID)
}

// DetectIntent sends the query to the agent session and returns the
// fulfillment text plus the decoded order-summary payload, when present.
// A payload that fails to decode is a hard error, not an empty result.
func (c *Client) DetectIntent(ctx context.Context, sessionID, query string) (Result, error) {
	if query == "" {
		return Result{}, fmt.Errorf("no query provided")
	}

	req := &dialogflowapi.GoogleCloudDialogflowV2DetectIntentRequest{
		QueryInput: &dialogflowapi.GoogleCloudDialogflowV2QueryInput{
			Text: &dialogflowapi.GoogleCloudDialogflowV2TextInput{
				Text:         query,
				LanguageCode: c.languageCode,
			},
		},
	}

	resp, err := c.service.Projects.Agent.Sessions.DetectIntent(c.SessionPath(sessionID), req).Context(ctx).Do()
	if err != nil {
		return Result{}, fmt.Errorf("failed to call dialogflow API: %w", err)
	}
	if resp.QueryResult == nil {
		return Result{}, fmt.Errorf("dialogflow response has no query result")
	}

	result := Result{FulfillmentText: resp.QueryResult.FulfillmentText}

	if len(resp.QueryResult.WebhookPayload) > 0 {
		var payload webhookPayload
		if err := json.Unmarshal(resp.QueryResult.WebhookPayload, &payload); err != nil {
			return Result{}, fmt.Errorf("failed to decode webhook payload: %w", err)
		}
		result.OrderSummary = payload.OrderSummary
	}

	return result, nil
}
