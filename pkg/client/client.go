package client

import (
	"net/http"
	"time"
)

const defaultTimeout = 90 * time.Second

// Message is the wire representation of one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body posted to the chat endpoint. The workflow ID
// names the graph the server executes to produce the reply.
type ChatRequest struct {
	WorkflowID string    `json:"workflow_id"`
	Messages   []Message `json:"messages"`
	Stream     bool      `json:"stream"`
}

// Client talks to the workflow server's chat endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the default timeout.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, defaultTimeout)
}

// NewClientWithTimeout creates a client with a custom timeout. The
// timeout covers the whole exchange including the streamed body, so it
// should be generous enough for a full model reply.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}
