package usecase_test

import (
	"context"

	"voice-order-assistant/internal/model"
	"voice-order-assistant/pkg/dialogflow"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock speech client for testing
type mockSpeech struct {
	transcript string
	err        error
}

func (m *mockSpeech) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return m.transcript, m.err
}

// Mock intent client for testing
type mockIntents struct {
	detectFunc func(ctx context.Context, sessionID, query string) (dialogflow.Result, error)
}

func (m *mockIntents) DetectIntent(ctx context.Context, sessionID, query string) (dialogflow.Result, error) {
	if m.detectFunc != nil {
		return m.detectFunc(ctx, sessionID, query)
	}
	return dialogflow.Result{}, nil
}

// Mock TTS client for testing
type mockTTS struct {
	audio []byte
	err   error
}

func (m *mockTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return m.audio, m.err
}

// Mock session repository backed by a plain map, with error injection.
type mockSessionRepo struct {
	sessions map[string]model.Session
	getErr   error
	resetErr error
	saveErr  error
	saves    int
	resets   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]model.Session{}}
}

func (m *mockSessionRepo) GetOrCreate(ctx context.Context, sessionID string) (model.Session, error) {
	if m.getErr != nil {
		return model.Session{}, m.getErr
	}
	if sess, ok := m.sessions[sessionID]; ok {
		return sess.Clone(), nil
	}
	sess := model.NewSession()
	m.sessions[sessionID] = sess.Clone()
	return sess, nil
}

func (m *mockSessionRepo) Reset(ctx context.Context, sessionID string) (model.Session, error) {
	if m.resetErr != nil {
		return model.Session{}, m.resetErr
	}
	m.resets++
	sess := model.NewSession()
	m.sessions[sessionID] = sess.Clone()
	return sess, nil
}

func (m *mockSessionRepo) Save(ctx context.Context, sessionID string, session model.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.sessions[sessionID] = session.Clone()
	return nil
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }
