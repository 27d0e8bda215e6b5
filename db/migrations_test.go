package db

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SkipsAppliedVersions(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_log")).WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM schema_log WHERE version = $1)")).
		WithArgs("0001_core").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM schema_log WHERE version = $1)")).
		WithArgs("0002_site_content").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for range migrations[1].statements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_log (version) VALUES ($1)")).
		WithArgs("0002_site_content").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, Migrate(context.Background(), conn, logger))
	assert.NoError(t, mock.ExpectationsWereMet())
}
