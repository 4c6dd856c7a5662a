package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStorage(sqlx.NewDb(db, "sqlmock")), mock
}

func ledgerColumns() []string {
	return []string{"upe_id", "user_id", "project_id", "environment_id"}
}

func TestRecordProjectOwnership_FillsBlankRow(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id IS NULL")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"upe_id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_project_env")).
		WithArgs(int64(3), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.RecordProjectOwnership(context.Background(), s.DB(), 7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordProjectOwnership_NoLedgerRow(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id IS NULL")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"upe_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_project_env")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()))

	err := s.RecordProjectOwnership(context.Background(), s.DB(), 7, 3)
	assert.ErrorIs(t, err, ErrLedgerRowNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordProjectOwnership_SecondProjectGetsOwnRow(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id IS NULL")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"upe_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_project_env")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()).AddRow(int64(11), int64(7), int64(1), int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_project_env (user_id, project_id)")).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(12, 1))

	err := s.RecordProjectOwnership(context.Background(), s.DB(), 7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordEnvironmentAccess_FillsEnvironmentInPlace(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()).AddRow(int64(11), int64(7), int64(3), nil))
	mock.ExpectExec(regexp.QuoteMeta("SET environment_id = $1")).
		WithArgs(int64(4), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.RecordEnvironmentAccess(context.Background(), s.DB(), 7, 3, 4, []string{"OWNER"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordEnvironmentAccess_SameEnvironmentIsNoop(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()).AddRow(int64(11), int64(7), int64(3), int64(4)))

	err := s.RecordEnvironmentAccess(context.Background(), s.DB(), 7, 3, 4, []string{"OWNER"})
	require.NoError(t, err)

	// No insert or update may follow the read.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordEnvironmentAccess_DifferentEnvironmentInsertsNewRow(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()).AddRow(int64(11), int64(7), int64(3), int64(4)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_project_env (user_id, project_id, environment_id, roles)")).
		WithArgs(int64(7), int64(3), int64(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))

	err := s.RecordEnvironmentAccess(context.Background(), s.DB(), 7, 3, 9, []string{"OWNER"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordEnvironmentAccess_NoRowInsertsFullRow(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND project_id = $2")).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_project_env (user_id, project_id, environment_id, roles)")).
		WithArgs(int64(7), int64(3), int64(9), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))

	err := s.RecordEnvironmentAccess(context.Background(), s.DB(), 7, 3, 9, []string{"OWNER"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
