package sqldb

import (
	"database/sql"
	"fmt"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB, dialect Dialect) *UserRepo {
	return &UserRepo{db: db, dialect: dialect}
}

// EnsureUserExists creates user if not exists and refreshes a non-empty username
func (r *UserRepo) EnsureUserExists(userID int64, username string) error {
	query := `
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET username = CASE
			WHEN EXCLUDED.username = '' THEN users.username
			ELSE EXCLUDED.username
		END
	`
	_, err := r.db.Exec(r.dialect.rebind(query), userID, username)
	return err
}

// ListUserIDs returns ids of all registered users
func (r *UserRepo) ListUserIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT user_id FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
