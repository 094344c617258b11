package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestSettingsRepositoryListByNames(t *testing.T) {
	db, mock, cleanup := newSettingsRepoMock(t)
	defer cleanup()

	repo := NewSettingsRepository(db)
	rows := sqlmock.NewRows([]string{"name", "type", "value_str", "value_int"}).
		AddRow("max_in_table", 2, nil, 30).
		AddRow("search_limit", 2, nil, 500)
	mock.ExpectQuery("SELECT name, type, value_str, value_int").
		WithArgs("search_limit", "max_in_table").
		WillReturnRows(rows)

	result, err := repo.ListByNames(context.Background(), []string{"search_limit", "max_in_table"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "max_in_table", result[0].Name)
	require.NotNil(t, result[1].ValueInt)
	assert.Equal(t, int64(500), *result[1].ValueInt)
	assert.Nil(t, result[1].ValueStr)
}

func TestSettingsRepositoryListByNamesEmpty(t *testing.T) {
	db, mock, cleanup := newSettingsRepoMock(t)
	defer cleanup()

	result, err := NewSettingsRepository(db).ListByNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
