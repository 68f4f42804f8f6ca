package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftlabs/weft/pkg/client"
)

func validGraph() *Graph {
	return &Graph{
		ID: "wf-1",
		Nodes: []Node{
			{ID: "in", Type: NodeTypeInput},
			{ID: "llm", Type: NodeTypeModel, Config: map[string]string{"model": "qwen3:latest"}},
			{ID: "out", Type: NodeTypeOutput},
		},
		Edges: []Edge{{From: "in", To: "llm"}, {From: "llm", To: "out"}},
	}
}

func TestValidateChat(t *testing.T) {
	tests := []struct {
		name    string
		graph   func() *Graph
		prompt  string
		wantErr string
	}{
		{
			name:   "valid graph and prompt",
			graph:  validGraph,
			prompt: "hello",
		},
		{
			name:    "empty prompt",
			graph:   validGraph,
			prompt:  "  \t ",
			wantErr: "prompt is empty",
		},
		{
			name:    "nil graph",
			graph:   func() *Graph { return nil },
			prompt:  "hello",
			wantErr: "no workflow selected",
		},
		{
			name: "no model node",
			graph: func() *Graph {
				g := validGraph()
				g.Nodes = []Node{{ID: "in", Type: NodeTypeInput}}
				g.Edges = nil
				return g
			},
			prompt:  "hello",
			wantErr: "no model node",
		},
		{
			name: "model node missing model config",
			graph: func() *Graph {
				g := validGraph()
				g.Nodes[1].Config = nil
				return g
			},
			prompt:  "hello",
			wantErr: "no model configured",
		},
		{
			name: "edge references unknown node",
			graph: func() *Graph {
				g := validGraph()
				g.Edges = append(g.Edges, Edge{From: "llm", To: "ghost"})
				return g
			},
			prompt:  "hello",
			wantErr: "unknown node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChat(tt.graph(), tt.prompt)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotReady)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildRequest(t *testing.T) {
	msgs := []client.Message{{Role: "user", Content: "hi"}}
	req := BuildRequest(validGraph(), msgs)

	assert.Equal(t, "wf-1", req.WorkflowID)
	assert.Equal(t, msgs, req.Messages)
	assert.True(t, req.Stream)
}

func TestLoad(t *testing.T) {
	t.Run("should load a graph exported by the editor", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workflow.json")
		data := `{
			"id": "wf-9",
			"name": "support bot",
			"nodes": [
				{"id": "llm", "type": "model", "config": {"model": "qwen3:latest"}}
			],
			"edges": []
		}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		g, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "wf-9", g.ID)
		assert.Len(t, g.ModelNodes(), 1)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("should fail on invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
