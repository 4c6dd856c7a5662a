package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	s, mock := newMockStorage(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE environment_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(environmentColumns()).
			AddRow(int64(4), int64(3), "main", true, "ACTIVE", now))

	env, err := s.GetEnvironment(context.Background(), s.DB(), 4)
	require.NoError(t, err)
	assert.Equal(t, "main", env.Name)
	assert.True(t, env.IsMain)
}

func TestGetEnvironment_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE environment_id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(environmentColumns()))

	_, err := s.GetEnvironment(context.Background(), s.DB(), 99)
	assert.ErrorIs(t, err, ErrEnvironmentNotFound)
}
