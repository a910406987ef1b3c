package coze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"fangbot/core"
)

// CozeClient calls the conversational backend's chat endpoint. A single
// synchronous request per query, no retries: a non-200 response or a response
// without an answer message is fatal for that request.
type CozeClient struct {
	baseURL        string
	accessToken    string
	botID          string
	conversationID string
	userTag        string
	httpClient     *http.Client
}

func NewCozeClient(baseURL, accessToken, botID, conversationID, userTag string, timeout time.Duration) *CozeClient {
	return &CozeClient{
		baseURL:        baseURL,
		accessToken:    accessToken,
		botID:          botID,
		conversationID: conversationID,
		userTag:        userTag,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	BotID          string `json:"bot_id"`
	User           string `json:"user"`
	Query          string `json:"query"`
	Stream         bool   `json:"stream"`
}

type chatMessage struct {
	Type        string `json:"type"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type chatResponse struct {
	Messages []chatMessage `json:"messages"`
}

// GetAnswer sends the query to the chat endpoint and returns the content of
// the first message with type "answer" and content_type "text".
func (c *CozeClient) GetAnswer(ctx context.Context, query string) (string, error) {
	reqBody := chatRequest{
		ConversationID: c.conversationID,
		BotID:          c.botID,
		User:           c.userTag,
		Query:          query,
		Stream:         false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/open_api/v2/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call conversational backend: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Conversational backend returned status %d: %s", resp.StatusCode, string(respBytes))
		return "", core.NewUpstreamError("conversational backend", resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}

	for _, msg := range chatResp.Messages {
		if msg.Type == "answer" && msg.ContentType == "text" && msg.Content != "" {
			return msg.Content, nil
		}
	}

	log.Printf("❌ No answer found in conversational backend response")
	return "", core.NewUpstreamError("conversational backend", http.StatusInternalServerError, "bot did not return a valid response")
}
