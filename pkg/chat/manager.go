package chat

import (
	"context"
	"fmt"

	"github.com/weftlabs/weft/pkg/client"
	"github.com/weftlabs/weft/pkg/logger"
	"github.com/weftlabs/weft/pkg/stream"
	"github.com/weftlabs/weft/pkg/workflow"
)

// Manager drives one chat conversation: it validates prerequisites,
// persists both sides of each turn, and runs the streaming exchange.
type Manager struct {
	history *History
	client  *client.Client
}

// NewManager creates a chat manager persisting to the given history path
func NewManager(historyPath string, c *client.Client) (*Manager, error) {
	logger.Debug("Creating chat manager with history path: %s", historyPath)

	history, err := NewHistory(historyPath)
	if err != nil {
		logger.Error("Failed to create history: %v", err)
		return nil, fmt.Errorf("failed to create history: %w", err)
	}

	return &Manager{
		history: history,
		client:  c,
	}, nil
}

// History returns the manager's history store
func (m *Manager) History() *History {
	return m.history
}

// ClearHistory removes all persisted messages
func (m *Manager) ClearHistory() error {
	return m.history.Clear()
}

// Send runs one chat turn against the given workflow. Snapshots are
// published to the consumer as content streams in; the resolved reply
// (or an error-role message on failure) is appended to the history.
func (m *Manager) Send(ctx context.Context, g *workflow.Graph, prompt string, publish stream.Publisher) (Message, error) {
	if err := workflow.ValidateChat(g, prompt); err != nil {
		return Message{}, err
	}

	userMsg := NewUserMessage(prompt)
	if err := m.history.Add(userMsg); err != nil {
		return Message{}, fmt.Errorf("failed to record user message: %w", err)
	}

	req := workflow.BuildRequest(g, m.wireMessages())

	snap, err := m.client.StreamChat(ctx, req, publish)
	if err != nil {
		if ctx.Err() != nil {
			// Abandoned turn, nothing to persist.
			return Message{}, err
		}
		errMsg := NewErrorMessage(snap.Text)
		if errMsg.Content == "" {
			errMsg.Content = fmt.Sprintf("Error: %v", err)
		}
		if histErr := m.history.Add(errMsg); histErr != nil {
			logger.Error("Failed to record error message: %v", histErr)
		}
		return errMsg, err
	}

	reply := NewAssistantMessage(snap.Text)
	if err := m.history.Add(reply); err != nil {
		return reply, fmt.Errorf("failed to record assistant message: %w", err)
	}

	logger.Debug("Chat turn complete, reply length: %d", len(reply.Content))
	return reply, nil
}

// wireMessages converts the persisted history to the transport shape,
// skipping error-role turns the server should never see.
func (m *Manager) wireMessages() []client.Message {
	history := m.history.GetMessages()
	msgs := make([]client.Message, 0, len(history))
	for _, msg := range history {
		if msg.IsError() {
			continue
		}
		msgs = append(msgs, client.Message{Role: msg.Role, Content: msg.Content})
	}
	return msgs
}
