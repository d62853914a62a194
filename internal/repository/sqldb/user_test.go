package sqldb

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepo_EnsureUserExists(t *testing.T) {
	tests := []struct {
		name          string
		dialect       Dialect
		query         string
		mockError     error
		expectedError bool
	}{
		{
			name:    "postgres placeholders",
			dialect: Postgres,
			query:   `INSERT INTO users \(user_id, username\)\s+VALUES \(\$1, \$2\)`,
		},
		{
			name:    "sqlite placeholders",
			dialect: SQLite,
			query:   `INSERT INTO users \(user_id, username\)\s+VALUES \(\?1, \?2\)`,
		},
		{
			name:          "database error",
			dialect:       Postgres,
			query:         "INSERT INTO users",
			mockError:     fmt.Errorf("database error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db, tt.dialect)

			expect := mock.ExpectExec(tt.query).WithArgs(int64(123), "alice")
			if tt.mockError != nil {
				expect.WillReturnError(tt.mockError)
			} else {
				expect.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err = repo.EnsureUserExists(123, "alice")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_ListUserIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db, Postgres)

	mock.ExpectQuery("SELECT user_id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2))

	ids, err := repo.ListUserIDs()

	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListUserIDs_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db, Postgres)

	mock.ExpectQuery("SELECT user_id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("not-a-number"))

	ids, err := repo.ListUserIDs()

	assert.Error(t, err)
	assert.Nil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
