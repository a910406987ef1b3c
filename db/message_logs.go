package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fangbot/models"
)

// PostgresMessageLogsRepository is the append-only store of message exchanges.
// There is no read, update or delete path; created_at is server-assigned and
// establishes event order across requests.
type PostgresMessageLogsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresMessageLogsRepository(db *sqlx.DB, schema string) *PostgresMessageLogsRepository {
	return &PostgresMessageLogsRepository{db: db, schema: schema}
}

func (r *PostgresMessageLogsRepository) CreateMessageLog(ctx context.Context, messageLog *models.MessageLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.message_logs (id, contact_name, query_text, bot_response, room_topic, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, contact_name, query_text, bot_response, room_topic, type, created_at`, r.schema)

	err := r.db.QueryRowxContext(ctx, query,
		messageLog.ID,
		messageLog.ContactName,
		messageLog.QueryText,
		messageLog.BotResponse,
		messageLog.RoomTopic,
		messageLog.Type,
	).StructScan(messageLog)
	if err != nil {
		return fmt.Errorf("failed to create message log: %w", err)
	}

	return nil
}
