package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
)

type messagesRepo struct {
	q *queries
}

func (r *messagesRepo) AppendMessage(ctx context.Context, m domain.Message) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO messages (id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.UserID, m.Content, m.CreatedAt.UTC(),
	)
	return err
}

func (r *messagesRepo) ListMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	rows, err := r.q.query(ctx, `
		SELECT id, user_id, content, created_at
		FROM messages
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, userID, messageID string) (bool, error) {
	res, err := r.q.exec(ctx,
		`DELETE FROM messages WHERE id = ? AND user_id = ?`,
		messageID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *messagesRepo) CountMessages(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM messages WHERE user_id = ?`, userID).Scan(&n)
	return n, r.q.mapErr(err)
}
