package store

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRepository_Get(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		wantValue string
		wantErr   error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM config WHERE parameter = $1")).
					WithArgs("masterPwd").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("digest"))
			},
			wantValue: "digest",
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM config")).
					WithArgs("masterPwd").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrConfigNotFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM config")).
					WithArgs("masterPwd").
					WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name: "serialization failure is busy",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM config")).
					WithArgs("masterPwd").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
			},
			wantErr: ErrStoreBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tt.setup(mock)

			repo := NewConfigRepository(newDBFromSQL(db))
			value, err := repo.Get(testContext(), "masterPwd")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantValue, value)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConfigRepository_Set(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO config")).
		WithArgs("masterPwdFormat", "current").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewConfigRepository(newDBFromSQL(db)).Set(testContext(), "masterPwdFormat", "current")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO config")).
		WithArgs("masterPwd", "digest").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := NewConfigRepository(newDBFromSQL(db)).Create(testContext(), "masterPwd", "digest")
	assert.ErrorIs(t, err, ErrConfigExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
