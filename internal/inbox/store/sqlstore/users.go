package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
)

const userColumns = `id, username, email, password_hash, verified,
	verify_code_hash, verify_code_expires_at, accepting_messages, created_at, updated_at`

type usersRepo struct {
	q *queries
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Verified,
		u.VerifyCodeHash, nullTime(u.VerifyCodeExpiresAt), u.AcceptingMessages,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) ResetVerification(
	ctx context.Context,
	userID, passwordHash, codeHash string,
	expiresAt time.Time,
) error {
	res, err := r.q.exec(ctx, `
		UPDATE users
		SET password_hash = ?, verify_code_hash = ?, verify_code_expires_at = ?, updated_at = ?
		WHERE id = ? AND NOT verified`,
		passwordHash, codeHash, expiresAt.UTC(), now(), userID,
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	res, err := r.q.exec(ctx, `
		UPDATE users
		SET verified = ?, verify_code_hash = '', verify_code_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		true, now(), userID,
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *usersRepo) SetAcceptingMessages(ctx context.Context, userID string, accept bool) error {
	res, err := r.q.exec(ctx,
		`UPDATE users SET accepting_messages = ?, updated_at = ? WHERE id = ?`,
		accept, now(), userID,
	)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *usersRepo) DeleteStaleUnverified(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.exec(ctx, `
		DELETE FROM users
		WHERE NOT verified AND (verify_code_expires_at IS NULL OR verify_code_expires_at < ?)`,
		before.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u       domain.User
		expires sql.NullTime
	)
	err := r.q.queryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Verified,
		&u.VerifyCodeHash, &expires, &u.AcceptingMessages, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, r.q.mapErr(err)
	}
	if expires.Valid {
		t := expires.Time.UTC()
		u.VerifyCodeExpiresAt = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func now() time.Time { return time.Now().UTC() }
