package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/eventsense/eventsense-api/internal/model"
	"github.com/eventsense/eventsense-api/internal/utils"
)

// AccountRepo provides CRUD operations for accounts.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id, name, email, password_hash, phone, role, preferred_categories, preferred_locations, created_at, updated_at"

func scanAccount(row interface{ Scan(...any) error }) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.Role,
		&a.PreferredCategories, &a.PreferredLocations, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create inserts an account with a bcrypt-hashed password and returns its ID.
// A duplicate email surfaces as ErrEmailExists.
func (r *AccountRepo) Create(ctx context.Context, name, email, password, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (name, email, password_hash, phone, role) VALUES (?,?,?,?,?)",
		name, email, hash, phone, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE email = ? LIMIT 1", email))
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id = ? LIMIT 1", id))
}

// UpdatePreferences replaces the stored preference sets for an account.
// Both values are comma-joined lists; empty strings clear the preference.
func (r *AccountRepo) UpdatePreferences(ctx context.Context, id uint64, categories, locations string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET preferred_categories = ?, preferred_locations = ? WHERE id = ?",
		categories, locations, id)
	return err
}

// ListAll returns every account, newest first, for the admin user listing.
// Password hashes are loaded but must not be serialized by callers.
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+accountCols+" FROM accounts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := make([]model.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// CountByRole returns the number of accounts holding the given role.
func (r *AccountRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE role = ?", role).Scan(&n)
	return n, err
}

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062). The driver error string embeds the numeric code.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
