// internal/database/chat.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quadfall/quadfall/internal/models"
)

// ChatStore is the Postgres-backed chat.Store.
type ChatStore struct {
	pool *pgxpool.Pool
}

func NewChatStore(pool *pgxpool.Pool) *ChatStore {
	return &ChatStore{pool: pool}
}

func (s *ChatStore) Append(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	q := `
	INSERT INTO chat_messages (user_id, message)
	VALUES ($1, $2)
	RETURNING id, created_at
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q, msg.AuthorID, msg.Message).Scan(&msg.ID, &msg.CreatedAt)
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}
	return msg, nil
}

func (s *ChatStore) Newest(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	q := `
	SELECT m.id, m.user_id, u.username, m.message, m.created_at
	FROM chat_messages m
	JOIN users u ON u.id = m.user_id
	ORDER BY m.created_at DESC, m.id DESC
	LIMIT $1
	`
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Username, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat row: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
