package messagelogs

import (
	"context"
	"fmt"
	"log"

	"fangbot/core"
	"fangbot/db"
	"fangbot/models"
)

// MessageLogsService records every accepted inbound message and its outcome.
// Exactly one record per message: classification 0 with the reply text when a
// reply was dispatched, classification 1 with an empty response otherwise.
type MessageLogsService struct {
	messageLogsRepo *db.PostgresMessageLogsRepository
}

func NewMessageLogsService(repo *db.PostgresMessageLogsRepository) *MessageLogsService {
	return &MessageLogsService{messageLogsRepo: repo}
}

func (s *MessageLogsService) RecordExchange(
	ctx context.Context,
	contactName, queryText, botResponse, roomTopic string,
	classification int,
) (*models.MessageLog, error) {
	log.Printf("📋 Starting to record message exchange for contact: %s, classification: %d", contactName, classification)

	if classification != models.ClassificationTriggered && classification != models.ClassificationNotTriggered {
		return nil, fmt.Errorf("classification must be 0 or 1, got %d", classification)
	}
	if classification == models.ClassificationNotTriggered && botResponse != "" {
		return nil, fmt.Errorf("non-triggered exchanges must have an empty bot response")
	}

	messageLog := &models.MessageLog{
		ID:          core.NewID("ml"),
		ContactName: contactName,
		QueryText:   queryText,
		BotResponse: botResponse,
		RoomTopic:   roomTopic,
		Type:        classification,
	}
	if err := s.messageLogsRepo.CreateMessageLog(ctx, messageLog); err != nil {
		return nil, fmt.Errorf("failed to record message exchange: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded message log with ID: %s", messageLog.ID)
	return messageLog, nil
}
