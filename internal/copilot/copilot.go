// Package copilot is the text-generation collaborator. It owns the SDK
// client and sessions; everything it returns is untrusted free text that the
// strategy package must defend against.
package copilot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	sdk "github.com/github/copilot-sdk/go"
)

const (
	defaultModel           = "gpt-5.3-codex"
	defaultReasoningEffort = "low"
)

// ErrGeneration wraps any failure of the upstream text-generation call.
var ErrGeneration = errors.New("generation failed")

type Manager struct {
	client *sdk.Client
	model  string
	logger *slog.Logger
}

type Options struct {
	Model  string
	Logger *slog.Logger
}

func NewManager(ctx context.Context, cwd string, opts Options) (*Manager, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = strings.TrimSpace(os.Getenv("COPILOT_MODEL"))
	}
	if model == "" {
		model = defaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := sdk.NewClient(&sdk.ClientOptions{Cwd: cwd})
	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("start copilot sdk client: %w", err)
	}

	return &Manager{client: client, model: model, logger: logger}, nil
}

func (m *Manager) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Stop()
}

func (m *Manager) CreateAdvisorSession(ctx context.Context, workingDir string) (*sdk.Session, error) {
	config := &sdk.SessionConfig{
		Model:            m.model,
		ReasoningEffort:  defaultReasoningEffort,
		WorkingDirectory: workingDir,
		InfiniteSessions: &sdk.InfiniteSessionConfig{Enabled: sdk.Bool(false)},
	}
	s, err := m.client.CreateSession(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create advisor session: %w", err)
	}
	return s, nil
}

// RequestExitStrategies sends one prompt and returns the raw response text.
// No parsing happens here; extraction belongs to the strategy core.
func (m *Manager) RequestExitStrategies(ctx context.Context, session *sdk.Session, promptText string) (string, error) {
	resp, err := session.SendAndWait(ctx, sdk.MessageOptions{Prompt: promptText})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := ""
	if resp != nil && resp.Data.Content != nil {
		text = strings.TrimSpace(*resp.Data.Content)
	}
	m.logger.Debug("advisor response received", "model", m.model, "bytes", len(text))
	return text, nil
}
