package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
)

// PreferenceRepo implements repository.PreferenceRepository
type PreferenceRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewPreferenceRepo creates a new preference repository
func NewPreferenceRepo(db *sql.DB, dialect Dialect) *PreferenceRepo {
	return &PreferenceRepo{db: db, dialect: dialect}
}

// Get returns the value stored under key
func (r *PreferenceRepo) Get(userID int64, key string) (string, bool, error) {
	var value string
	query := `SELECT pref_value FROM preferences WHERE user_id = $1 AND pref_key = $2`
	err := r.db.QueryRow(r.dialect.rebind(query), userID, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *PreferenceRepo) Set(userID int64, key, value string) error {
	query := `
		INSERT INTO preferences (user_id, pref_key, pref_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, pref_key)
		DO UPDATE SET pref_value = EXCLUDED.pref_value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.Exec(r.dialect.rebind(query), userID, key, value)
	return err
}

// Delete removes a single key
func (r *PreferenceRepo) Delete(userID int64, key string) error {
	query := `DELETE FROM preferences WHERE user_id = $1 AND pref_key = $2`
	_, err := r.db.Exec(r.dialect.rebind(query), userID, key)
	return err
}

// ListByPrefix returns every key starting with prefix
func (r *PreferenceRepo) ListByPrefix(userID int64, prefix string) (map[string]string, error) {
	query := `
		SELECT pref_key, pref_value
		FROM preferences
		WHERE user_id = $1 AND pref_key LIKE $2 ESCAPE '\'
	`
	rows, err := r.db.Query(r.dialect.rebind(query), userID, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

// DeleteByPrefix removes every key starting with prefix
func (r *PreferenceRepo) DeleteByPrefix(userID int64, prefix string) error {
	query := `DELETE FROM preferences WHERE user_id = $1 AND pref_key LIKE $2 ESCAPE '\'`
	_, err := r.db.Exec(r.dialect.rebind(query), userID, escapeLike(prefix)+"%")
	return err
}
