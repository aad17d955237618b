package store

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/jdparks/larder/internal/model"
)

type AuthCodeStore struct {
	db *sql.DB
}

func NewAuthCodeStore(db *sql.DB) *AuthCodeStore {
	return &AuthCodeStore{db: db}
}

func scanAuthCode(scanner interface{ Scan(...any) error }) (*model.AuthCode, error) {
	var ac model.AuthCode
	var householdID sql.NullInt64
	var usedAt sql.NullTime

	err := scanner.Scan(
		&ac.ID, &ac.Code, &ac.Email, &ac.Purpose, &householdID,
		&ac.ExpiresAt, &usedAt, &ac.Attempts, &ac.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if householdID.Valid {
		ac.HouseholdID = &householdID.Int64
	}
	if usedAt.Valid {
		ac.UsedAt = &usedAt.Time
	}
	return &ac, nil
}

const authCodeCols = `id, code, email, purpose, household_id, expires_at, used_at, attempts, created_at`

// generateCode returns a 6-digit numeric code (100000–999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Create generates a new 6-digit code with a 15-minute expiry. Any previous
// pending codes for the same email are invalidated first.
func (s *AuthCodeStore) Create(email, purpose string, householdID *int64) (*model.AuthCode, error) {
	_, err := s.db.Exec(
		`UPDATE auth_codes SET used_at = datetime('now') WHERE email = ? AND used_at IS NULL AND expires_at > datetime('now')`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("invalidate previous codes: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().UTC().Add(15 * time.Minute)

	result, err := s.db.Exec(
		`INSERT INTO auth_codes (code, email, purpose, household_id, expires_at) VALUES (?, ?, ?, ?, ?)`,
		code, email, purpose, nullInt(householdID), expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert auth code: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+authCodeCols+` FROM auth_codes WHERE id = ?`, id)
	return scanAuthCode(row)
}

// GetLatestByEmail returns the most recent valid (unexpired, unused) code for
// an email.
func (s *AuthCodeStore) GetLatestByEmail(email string) (*model.AuthCode, error) {
	row := s.db.QueryRow(
		`SELECT `+authCodeCols+` FROM auth_codes WHERE email = ? AND expires_at > datetime('now') AND used_at IS NULL ORDER BY created_at DESC, id DESC LIMIT 1`,
		email,
	)
	ac, err := scanAuthCode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest auth code: %w", err)
	}
	return ac, nil
}

// IncrementAttempts increments the attempt count and returns the new value.
func (s *AuthCodeStore) IncrementAttempts(id int64) (int, error) {
	_, err := s.db.Exec(`UPDATE auth_codes SET attempts = attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("increment attempts: %w", err)
	}

	var attempts int
	err = s.db.QueryRow(`SELECT attempts FROM auth_codes WHERE id = ?`, id).Scan(&attempts)
	if err != nil {
		return 0, fmt.Errorf("read attempts: %w", err)
	}
	return attempts, nil
}

func (s *AuthCodeStore) MarkUsed(id int64) error {
	_, err := s.db.Exec(`UPDATE auth_codes SET used_at = datetime('now') WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark auth code used: %w", err)
	}
	return nil
}

func (s *AuthCodeStore) DeleteExpired() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM auth_codes WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("delete expired auth codes: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
