package lookup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// LookupClient is the secondary answer generator: an OpenAI-compatible
// chat-completions call carrying a system prompt built from the product
// reference table. Invoked only when the primary backend's answer is judged
// unusable.
type LookupClient struct {
	client *openai.Client
	model  string
}

func NewLookupClient(baseURL, apiKey, model string, timeout time.Duration) *LookupClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &LookupClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Respond generates an answer for userInput under the given system prompt
func (c *LookupClient) Respond(ctx context.Context, systemPrompt, userInput string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userInput},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call lookup responder: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("❌ Lookup responder returned no choices")
		return "", fmt.Errorf("lookup responder returned no choices")
	}

	answer := resp.Choices[0].Message.Content
	if answer == "" {
		log.Printf("❌ Lookup responder returned an empty answer")
		return "", fmt.Errorf("lookup responder returned an empty answer")
	}

	return answer, nil
}
