package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"nkeinfinity/internal/domain"
)

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = `id, name, email, phone, company, gst_number, message, type, status,
    password_hash, COALESCE(created_at,'') AS created_at, updated_at`

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO contacts(id, name, email, phone, company, gst_number, message, type, status, created_at)
	  VALUES(:id, :name, :email, :phone, :company, :gst_number, :message, :type, :status, :created_at)
	`, c)
	return err
}

// List returns contacts newest first.
func (r *ContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	var out []domain.Contact
	err := r.db.SelectContext(ctx, &out, `SELECT `+contactCols+` FROM contacts ORDER BY created_at DESC`)
	return out, err
}

func (r *ContactRepo) Get(ctx context.Context, id string) (domain.Contact, error) {
	var c domain.Contact
	err := r.db.GetContext(ctx, &c, `SELECT `+contactCols+` FROM contacts WHERE id = ?`, id)
	return c, err
}

func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contacts`)
	return n, err
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// SetPassword stores the hash and promotes the contact to an existing customer.
func (r *ContactRepo) SetPassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET password_hash=?, type='existing', updated_at=CURRENT_TIMESTAMP WHERE id=?`, hash, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *ContactRepo) AddCredential(ctx context.Context, gst, hash string) (domain.GeneratedCredential, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO generated_credentials(gst_number, password_hash) VALUES(?, ?)`, gst, hash)
	if err != nil {
		return domain.GeneratedCredential{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.GeneratedCredential{}, err
	}
	var g domain.GeneratedCredential
	err = r.db.GetContext(ctx, &g, `SELECT id, gst_number, password_hash, created_at FROM generated_credentials WHERE id=?`, id)
	return g, err
}

func (r *ContactRepo) ListCredentials(ctx context.Context) ([]domain.GeneratedCredential, error) {
	var out []domain.GeneratedCredential
	err := r.db.SelectContext(ctx, &out, `SELECT id, gst_number, password_hash, created_at FROM generated_credentials ORDER BY id DESC`)
	return out, err
}
