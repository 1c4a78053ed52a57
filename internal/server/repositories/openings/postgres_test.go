package openings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

var cols = []string{"opening_id", "job_title", "description", "open_flag", "date_created"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func strPtr(s string) *string { return &s }

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT\s+opening_id,.*FROM\s+openings\s+ORDER\s+BY\s+date_created\s+DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "QA", nil, true, now).
			AddRow(1, "Dev", "Go backend", false, now.Add(-time.Hour)))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Description)
	assert.Equal(t, "Go backend", *got[1].Description)
	assert.False(t, got[1].OpenFlag)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+openings`).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+openings`).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(1, "Dev", nil, true, time.Now()).
		RowError(0, errors.New("broken row")))

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "broken row")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^SELECT\s+opening_id,.*FROM\s+openings\s+WHERE\s+opening_id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs(7).WillReturnRows(sqlmock.NewRows(cols).AddRow(7, "Dev", nil, true, time.Now()))
	mock.ExpectQuery(q).WithArgs(8).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs(9).WillReturnError(errors.New("db err"))

	o, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, o.OpeningID)

	_, err = repo.Get(context.Background(), 8)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Get(context.Background(), 9)
	require.ErrorContains(t, err, "db error: db err")
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+openings\s*\(job_title,\s*description\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+opening_id`
	mock.ExpectQuery(q).WithArgs("Dev", "Go").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "Dev", "Go", true, time.Now()))

	o, err := repo.Create(context.Background(), models.OpeningInput{JobTitle: "Dev", Description: strPtr("Go")})
	require.NoError(t, err)
	assert.Equal(t, 3, o.OpeningID)
	assert.True(t, o.OpenFlag)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+openings\s+SET\s+job_title\s*=\s*\$2,\s*description\s*=\s*\$3,\s*open_flag\s*=\s*\$4\s+WHERE\s+opening_id\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs(3, "QA", nil, false).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "QA", nil, false, time.Now()))
	mock.ExpectQuery(q).WithArgs(4, "QA", nil, false).WillReturnError(sql.ErrNoRows)

	o, err := repo.Update(context.Background(), &models.Opening{OpeningID: 3, JobTitle: "QA"})
	require.NoError(t, err)
	assert.Equal(t, "QA", o.JobTitle)

	_, err = repo.Update(context.Background(), &models.Opening{OpeningID: 4, JobTitle: "QA"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `^DELETE\s+FROM\s+openings\s+WHERE\s+opening_id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs(5).WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), 3))
	require.ErrorIs(t, repo.Delete(context.Background(), 4), common.ErrorNotFound)
	require.ErrorContains(t, repo.Delete(context.Background(), 5), "db error")
	require.NoError(t, mock.ExpectationsWereMet())
}
