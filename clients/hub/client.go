package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"fangbot/core"
	"fangbot/models"
)

// HubClient delivers composed replies through the messaging hub's send API.
type HubClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHubClient(baseURL string, timeout time.Duration) *HubClient {
	return &HubClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendMessageRequest is the hub's send payload. Exactly one of IMRoomID or
// IMContactID is set: group replies go to the room, direct replies to the
// contact.
type SendMessageRequest struct {
	IMBotID           string                 `json:"imBotId"`
	MessageType       int                    `json:"messageType"`
	Payload           models.OutboundPayload `json:"payload"`
	ExternalRequestID string                 `json:"externalRequestId"`
	IMRoomID          string                 `json:"imRoomId,omitempty"`
	RoomTopic         string                 `json:"roomTopic,omitempty"`
	IMContactID       string                 `json:"imContactId,omitempty"`
}

// SendMessage posts the payload to the hub's send endpoint and returns the
// raw response body. A fresh externalRequestId is generated per send for
// idempotency and tracing.
func (c *HubClient) SendMessage(
	ctx context.Context,
	msg *models.InboundMessage,
	payload models.OutboundPayload,
) (json.RawMessage, error) {
	if msg.MessageType == nil {
		return nil, fmt.Errorf("messageType is required")
	}

	sendReq := SendMessageRequest{
		IMBotID:           msg.IMBotID,
		MessageType:       *msg.MessageType,
		Payload:           payload,
		ExternalRequestID: uuid.NewString(),
	}

	if msg.IsGroupMessage() {
		sendReq.IMRoomID = msg.IMRoomID
		sendReq.RoomTopic = msg.RoomTopic
	} else {
		sendReq.IMContactID = msg.IMContactID
	}

	bodyBytes, err := json.Marshal(sendReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal send request: %w", err)
	}

	sendURL := c.baseURL + "/api/v2/message/send?token=" + url.QueryEscape(msg.Token)
	req, err := http.NewRequestWithContext(ctx, "POST", sendURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call dispatch API: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read send response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Dispatch API returned status %d: %s", resp.StatusCode, string(respBytes))
		return nil, core.NewUpstreamError("dispatch API", resp.StatusCode, string(respBytes))
	}

	return json.RawMessage(respBytes), nil
}
