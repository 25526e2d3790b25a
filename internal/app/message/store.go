package message

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists messages in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanMessage(row pgx.Row) (Message, error) {
	var m Message
	err := row.Scan(
		&m.ID,
		&m.SenderID,
		&m.ReceiverID,
		&m.Text,
		&m.Image,
		&m.Images,
		&m.CreatedAt,
	)
	if len(m.Images) == 0 {
		m.Images = nil
	}
	return m, err
}

const messageColumns = `
	id, sender_id, receiver_id,
	COALESCE(text, ''), COALESCE(image_url, ''), COALESCE(image_urls, '{}'),
	created_at`

// Save persists the message and returns it with the store-assigned identifier
// and creation timestamp. Empty text and image fields are stored as NULL.
func (s *Store) Save(ctx context.Context, m Message) (Message, error) {
	var urls []string
	if len(m.Images) > 0 {
		urls = m.Images
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, text, image_url, image_urls)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING `+messageColumns,
		m.SenderID, m.ReceiverID, m.Text, m.Image, urls,
	)

	saved, err := scanMessage(row)
	if err != nil {
		return Message{}, fmt.Errorf("save message: %w", err)
	}
	return saved, nil
}

// Conversation returns every message exchanged between the two users, in
// either direction, ordered by creation time ascending. The id tie-break only
// matters for rows written within the same clock tick.
func (s *Store) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at, id`,
		userA, userB,
	)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	defer rows.Close()

	conversation := make([]Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		conversation = append(conversation, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	return conversation, nil
}
