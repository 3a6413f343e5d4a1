package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexus/internal/domain"
)

const messageSelect = `
	SELECT m.id, m.sender_id, m.recipient_id, m.content, m.type, m.status,
		m.timestamp, m.expires_at, m.deleted, s.username, r.username
	FROM messages m
	JOIN users s ON m.sender_id = s.id
	JOIN users r ON m.recipient_id = r.id`

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content, type, status, timestamp, expires_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		msg.SenderID, msg.RecipientID, msg.Content, msg.Type, msg.Status,
		msg.Timestamp, msg.ExpiresAt, msg.Deleted,
	).Scan(&msg.ID)
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg domain.Message
	err := r.pool.QueryRow(ctx, messageSelect+` WHERE m.id = $1`, id).Scan(
		&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Content, &msg.Type,
		&msg.Status, &msg.Timestamp, &msg.ExpiresAt, &msg.Deleted,
		&msg.SenderUsername, &msg.RecipientUsername,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepo) FindConversation(ctx context.Context, userAID, userBID int64, page, size int) ([]domain.Message, bool, error) {
	// Fetch size+1 to know whether another page exists.
	query := messageSelect + `
		WHERE ((m.sender_id = $1 AND m.recipient_id = $2) OR (m.sender_id = $2 AND m.recipient_id = $1))
			AND m.deleted = false
		ORDER BY m.timestamp DESC
		LIMIT $3 OFFSET $4`

	messages, err := r.scanMessages(ctx, query, userAID, userBID, size+1, page*size)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(messages) > size
	if hasMore {
		messages = messages[:size]
	}
	return messages, hasMore, nil
}

func (r *MessageRepo) FindAllByType(ctx context.Context, types []domain.MessageType) ([]domain.Message, error) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	query := messageSelect + ` WHERE m.type = ANY($1) ORDER BY m.timestamp DESC`
	return r.scanMessages(ctx, query, names)
}

func (r *MessageRepo) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *MessageRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET deleted = true WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) HardDelete(ctx context.Context, id int64, tombstone string) error {
	query := `
		UPDATE messages
		SET deleted = true, type = $2, content = $3, expires_at = NULL
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, domain.TypeText, tombstone)
	return err
}

func (r *MessageRepo) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE expires_at IS NOT NULL AND expires_at < $1`, t)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *MessageRepo) scanMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Content, &msg.Type,
			&msg.Status, &msg.Timestamp, &msg.ExpiresAt, &msg.Deleted,
			&msg.SenderUsername, &msg.RecipientUsername,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
