package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"nkeinfinity/internal/session"
)

// SessionRepo is the sqlite-backed session.Store.
type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Get(ctx context.Context, sid string) (string, error) {
	var row struct {
		Token     string `db:"token"`
		ExpiresAt string `db:"expires_at"`
	}
	err := r.DB.GetContext(ctx, &row, `SELECT token, expires_at FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if row.ExpiresAt != "" {
		if exp, perr := time.Parse(time.RFC3339, row.ExpiresAt); perr == nil && !time.Now().Before(exp) {
			return "", session.ErrNoToken
		}
	}
	_, _ = r.DB.ExecContext(ctx, `UPDATE sessions SET last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return row.Token, nil
}

func (r *SessionRepo) Put(ctx context.Context, sid, token string, ttl time.Duration) error {
	exp := ""
	if ttl > 0 {
		exp = time.Now().Add(ttl).UTC().Format(time.RFC3339)
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO sessions(id,token,expires_at,last_seen)
                          VALUES(?,?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET token=excluded.token, expires_at=excluded.expires_at, last_seen=CURRENT_TIMESTAMP`,
		sid, token, exp)
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, sid)
	return err
}

// PurgeExpired removes sessions whose expiry has passed.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at != '' AND expires_at <= ?`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
