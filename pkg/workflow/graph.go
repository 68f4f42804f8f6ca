package workflow

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node types the chat feature cares about. The editor supports more;
// unknown types pass through validation untouched.
const (
	NodeTypeModel  = "model"
	NodeTypeInput  = "input"
	NodeTypeOutput = "output"
)

// Node is one element of a workflow graph.
type Node struct {
	ID     string            `json:"id"`
	Type   string            `json:"type"`
	Config map[string]string `json:"config,omitempty"`
}

// Edge connects two nodes by ID.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the workflow the server executes to answer a chat turn.
type Graph struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Load reads a graph from a JSON file exported by the editor.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse workflow file: %w", err)
	}
	return &g, nil
}

// FindNode returns the node with the given ID.
func (g *Graph) FindNode(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ModelNodes returns every model node in the graph.
func (g *Graph) ModelNodes() []Node {
	var nodes []Node
	for _, n := range g.Nodes {
		if n.Type == NodeTypeModel {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
