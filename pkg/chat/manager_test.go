package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftlabs/weft/pkg/client"
	"github.com/weftlabs/weft/pkg/stream"
	"github.com/weftlabs/weft/pkg/workflow"
)

func testGraph() *workflow.Graph {
	return &workflow.Graph{
		ID: "wf-test",
		Nodes: []workflow.Node{
			{ID: "in", Type: workflow.NodeTypeInput},
			{ID: "llm", Type: workflow.NodeTypeModel, Config: map[string]string{"model": "qwen3:latest"}},
			{ID: "out", Type: workflow.NodeTypeOutput},
		},
		Edges: []workflow.Edge{{From: "in", To: "llm"}, {From: "llm", To: "out"}},
	}
}

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	manager, err := NewManager(filepath.Join(t.TempDir(), "history.json"), client.NewClient(server.URL))
	require.NoError(t, err)
	return manager, server
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func TestManagerSend(t *testing.T) {
	t.Run("should persist both sides of a successful turn", func(t *testing.T) {
		manager, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("data: The answer is 42.\n\n"))
		})

		var snapshots []stream.Snapshot
		reply, err := manager.Send(context.Background(), testGraph(), "what is the answer?", func(snap stream.Snapshot) {
			snapshots = append(snapshots, snap)
		})

		require.NoError(t, err)
		assert.Equal(t, "The answer is 42.", reply.Content)
		assert.True(t, reply.IsAssistant())
		assert.NotEmpty(t, snapshots)

		msgs := manager.History().GetMessages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "what is the answer?", msgs[0].Content)
		assert.Equal(t, "The answer is 42.", msgs[1].Content)
	})

	t.Run("should reject an empty prompt before opening a session", func(t *testing.T) {
		called := false
		manager, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := manager.Send(context.Background(), testGraph(), "   ", nil)

		assert.ErrorIs(t, err, workflow.ErrNotReady)
		assert.False(t, called)
		assert.Zero(t, manager.History().Len())
	})

	t.Run("should record an error message on server failure", func(t *testing.T) {
		manager, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "node crashed"}`))
		})

		reply, err := manager.Send(context.Background(), testGraph(), "hello", nil)

		require.Error(t, err)
		assert.True(t, reply.IsError())
		assert.Contains(t, reply.Content, "node crashed")

		msgs := manager.History().GetMessages()
		require.Len(t, msgs, 2)
		assert.Equal(t, RoleUser, msgs[0].Role)
		assert.Equal(t, RoleError, msgs[1].Role)
	})

	t.Run("should not send error turns back to the server", func(t *testing.T) {
		fail := true
		var lastLen int
		manager, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			var req client.ChatRequest
			if err := readJSON(r, &req); err == nil {
				lastLen = len(req.Messages)
			}

			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "transient"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("data: recovered\n\n"))
		})

		_, err := manager.Send(context.Background(), testGraph(), "first", nil)
		require.Error(t, err)

		fail = false
		_, err = manager.Send(context.Background(), testGraph(), "second", nil)
		require.NoError(t, err)

		// user "first", user "second": the error turn is filtered out.
		assert.Equal(t, 2, lastLen)
	})
}
