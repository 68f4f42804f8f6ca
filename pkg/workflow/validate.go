package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/weftlabs/weft/pkg/client"
)

// ErrNotReady wraps every validation failure so callers can distinguish
// "fix your workflow" from transport problems with a single errors.Is.
var ErrNotReady = errors.New("workflow not ready for chat")

// ValidateChat checks the prerequisites a chat request depends on. The
// server re-validates nothing: a session only starts against a graph
// that passed this check.
func ValidateChat(g *Graph, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrNotReady)
	}
	if g == nil {
		return fmt.Errorf("%w: no workflow selected", ErrNotReady)
	}

	models := g.ModelNodes()
	if len(models) == 0 {
		return fmt.Errorf("%w: workflow %q has no model node", ErrNotReady, g.ID)
	}
	for _, n := range models {
		if n.Config["model"] == "" {
			return fmt.Errorf("%w: model node %q has no model configured", ErrNotReady, n.ID)
		}
	}

	for _, e := range g.Edges {
		if _, ok := g.FindNode(e.From); !ok {
			return fmt.Errorf("%w: edge references unknown node %q", ErrNotReady, e.From)
		}
		if _, ok := g.FindNode(e.To); !ok {
			return fmt.Errorf("%w: edge references unknown node %q", ErrNotReady, e.To)
		}
	}

	return nil
}

// BuildRequest assembles the chat request for one turn of the given
// workflow. Messages must already include the new user turn.
func BuildRequest(g *Graph, messages []client.Message) client.ChatRequest {
	return client.ChatRequest{
		WorkflowID: g.ID,
		Messages:   messages,
		Stream:     true,
	}
}
