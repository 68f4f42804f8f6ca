package headless

import (
	"context"
	"fmt"

	"github.com/weftlabs/weft/pkg/chat"
	"github.com/weftlabs/weft/pkg/client"
	"github.com/weftlabs/weft/pkg/config"
	"github.com/weftlabs/weft/pkg/logger"
	"github.com/weftlabs/weft/pkg/stream"
	"github.com/weftlabs/weft/pkg/workflow"
)

// Runner executes chat turns against a workflow and prints the streamed
// reply to the console.
type Runner struct {
	manager   *chat.Manager
	graph     *workflow.Graph
	output    *Output
	streaming bool
}

// NewRunner wires a runner from global config. When continueHistory is
// false the persisted conversation is cleared first.
func NewRunner(continueHistory bool) (*Runner, error) {
	settings := config.Get()

	c := client.NewClientWithTimeout(settings.Server.URL, settings.Server.Timeout)

	manager, err := chat.NewManager(config.BuildSettingsPath(settings.History.Path), c)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat manager: %w", err)
	}
	if !continueHistory {
		if err := manager.ClearHistory(); err != nil {
			return nil, fmt.Errorf("failed to clear history: %w", err)
		}
	}

	graph, err := workflow.Load(settings.Workflow.Path)
	if err != nil {
		return nil, err
	}

	return &Runner{
		manager:   manager,
		graph:     graph,
		output:    NewOutput(),
		streaming: settings.Streaming,
	}, nil
}

// Run executes a single prompt and prints the reply.
func (r *Runner) Run(ctx context.Context, prompt string) error {
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	r.output.Notice(fmt.Sprintf("workflow %s", r.graph.ID))
	logger.Info("Running prompt against workflow %s", r.graph.ID)

	// Snapshots replace one another; printing just the suffix beyond
	// what was already written turns them back into deltas.
	written := 0
	publish := func(snap stream.Snapshot) {
		if !r.streaming || !snap.Streaming {
			return
		}
		if len(snap.Text) > written {
			r.output.Delta(snap.Text[written:])
			written = len(snap.Text)
		}
	}

	reply, err := r.manager.Send(ctx, r.graph, prompt, publish)
	if err != nil {
		if written > 0 {
			r.output.Delta("\n")
		}
		text := reply.Content
		if text == "" {
			text = fmt.Sprintf("Error: %v", err)
		}
		r.output.Error(text)
		return err
	}

	if r.streaming && written > 0 {
		// The resolved text can differ from what streamed in (fallback
		// branch); print any tail plus the closing newline.
		if len(reply.Content) > written {
			r.output.Delta(reply.Content[written:])
		}
		r.output.Delta("\n")
	} else {
		r.output.Line(reply.Content)
	}

	return nil
}
