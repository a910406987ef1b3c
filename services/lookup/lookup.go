package lookup

import (
	"context"
	"fmt"
	"log"

	lookupclient "fangbot/clients/lookup"
	"fangbot/services/products"
)

// LookupService is the secondary answer generator consulted when the primary
// backend's answer is judged unusable. It pairs the static product reference
// table with a chat-completions call carrying the table as system prompt. The
// lookup is always given the user's original query, never the backend's
// partial answer.
type LookupService struct {
	productsService *products.ProductsService
	client          *lookupclient.LookupClient
}

func NewLookupService(productsService *products.ProductsService, client *lookupclient.LookupClient) *LookupService {
	return &LookupService{
		productsService: productsService,
		client:          client,
	}
}

func (s *LookupService) GetAnswer(ctx context.Context, query string) (string, error) {
	log.Printf("📋 Starting to generate lookup answer for query: %s", query)

	answer, err := s.client.Respond(ctx, s.productsService.SystemPrompt(), query)
	if err != nil {
		return "", fmt.Errorf("failed to generate lookup answer: %w", err)
	}

	log.Printf("📋 Completed successfully - generated lookup answer")
	return answer, nil
}
