package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/weftlabs/weft/pkg/logger"
	"github.com/weftlabs/weft/pkg/stream"
	"github.com/weftlabs/weft/pkg/wire"
)

// StreamChat posts a chat request and decodes the streamed reply,
// publishing a snapshot after every content update. It returns the final
// snapshot once the session reaches a terminal state.
//
// Transport chunks are fed to the session exactly as the network
// delivers them; the session's splitter takes care of records that span
// chunk boundaries. A transport or decode error fails the session and is
// returned. Context cancellation means the consumer is gone: the session
// is abandoned without a final publish.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest, publish stream.Publisher) (stream.Snapshot, error) {
	req.Stream = true

	reqBody, err := json.Marshal(req)
	if err != nil {
		return stream.Snapshot{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return stream.Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return stream.Snapshot{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stream.Snapshot{}, c.readErrorResponse(resp)
	}

	session := stream.NewSession(publish)
	logger.Debug("session %s opened against %s", session.ID(), url)

	reader := wire.NewChunkReader(resp.Body)
	for {
		chunk, err := reader.Next()
		if chunk != "" {
			session.HandleChunk(chunk)
		}
		if err == io.EOF {
			return session.Complete(), nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				// Consumer teardown: discard the partial session
				// without publishing anything further.
				logger.Debug("session %s abandoned: %v", session.ID(), ctxErr)
				return stream.Snapshot{}, ctxErr
			}
			return session.Fail(err), err
		}
	}
}

// SendMessage runs a full exchange without incremental publishing and
// returns the resolved reply text.
func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (string, error) {
	snap, err := c.StreamChat(ctx, req, nil)
	if err != nil {
		return "", err
	}
	return snap.Text, nil
}

// readErrorResponse turns a non-success status into an error, preferring
// the server's JSON error shape over the raw body.
func (c *Client) readErrorResponse(resp *http.Response) error {
	errorBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d (failed to read error response: %w)", resp.StatusCode, err)
	}

	var errorResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(errorBody, &errorResp) == nil && errorResp.Error != "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, errorResp.Error)
	}

	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(errorBody))
}
