package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/jobboard/internal/sqlutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		conn.Close()
	})
	return NewWithConn(conn), mock
}

func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

var jobCols = []string{"id", "title", "salary", "equity", "companyHandle"}

// =============================================================================
// BuildListQuery
// =============================================================================

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    JobFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no criteria",
			filter:    JobFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "title only",
			filter:    JobFilter{Title: strPtr("Job1")},
			wantWhere: " WHERE title ILIKE $1",
			wantArgs:  []any{"%Job1%"},
		},
		{
			name:      "min salary with equity false",
			filter:    JobFilter{MinSalary: intPtr(250), HasEquity: boolPtr(false)},
			wantWhere: " WHERE salary >= $1",
			wantArgs:  []any{250},
		},
		{
			name:      "equity only",
			filter:    JobFilter{HasEquity: boolPtr(true)},
			wantWhere: " WHERE equity > 0",
			wantArgs:  nil,
		},
		{
			name:      "equity and title",
			filter:    JobFilter{HasEquity: boolPtr(true), Title: strPtr("eng")},
			wantWhere: " WHERE equity > 0 AND title ILIKE $1",
			wantArgs:  []any{"%eng%"},
		},
		{
			name:      "all criteria",
			filter:    JobFilter{MinSalary: intPtr(100), HasEquity: boolPtr(true), Title: strPtr("Job")},
			wantWhere: " WHERE salary >= $1 AND equity > 0 AND title ILIKE $2",
			wantArgs:  []any{100, "%Job%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildListQuery(tt.filter)
			assert.Equal(t, listJobsBase+tt.wantWhere+" ORDER BY title", q.SQL)
			assert.Equal(t, tt.wantArgs, q.Args)
		})
	}
}

func TestBuildListQuery_Idempotent(t *testing.T) {
	filter := JobFilter{MinSalary: intPtr(1), HasEquity: boolPtr(true), Title: strPtr("x")}
	assert.Equal(t, BuildListQuery(filter), BuildListQuery(filter))
}

func TestBuildListQuery_NoWhereWithoutCriteria(t *testing.T) {
	q := BuildListQuery(JobFilter{})
	assert.NotContains(t, q.SQL, "WHERE")
	assert.True(t, strings.HasSuffix(q.SQL, "ORDER BY title"))
	assert.Empty(t, q.Args)
}

// =============================================================================
// Accessor
// =============================================================================

func TestCreateJob(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs("New Job", 100000, "0.2", "c1").
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(7, "New Job", 100000, "0.2", "c1"))

	job, err := db.CreateJob(context.Background(), NewJobInput{
		Title:         "New Job",
		Salary:        intPtr(100000),
		Equity:        strPtr("0.2"),
		CompanyHandle: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, &Job{ID: 7, Title: "New Job", Salary: intPtr(100000), Equity: strPtr("0.2"), CompanyHandle: "c1"}, job)
}

func TestCreateJob_UnknownCompany(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs("New Job", nil, nil, "nope").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := db.CreateJob(context.Background(), NewJobInput{Title: "New Job", CompanyHandle: "nope"})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "company", nf.Resource)
}

func TestListJobs(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "title", "salary", "equity", "companyHandle", "companyName"}).
		AddRow(2, "J2", 2, "0.2", "c1", "C1").
		AddRow(3, "J3", 3, nil, "c1", "C1")
	mock.ExpectQuery(`SELECT .+ FROM jobs j .+ WHERE salary >= \$1 ORDER BY title`).
		WithArgs(2).
		WillReturnRows(rows)

	jobs, err := db.ListJobs(context.Background(), JobFilter{MinSalary: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "J2", jobs[0].Title)
	assert.Equal(t, "0.2", *jobs[0].Equity)
	assert.Nil(t, jobs[1].Equity)
	assert.Equal(t, "C1", *jobs[1].CompanyName)
}

func TestListJobs_Empty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ ORDER BY title`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "salary", "equity", "companyHandle", "companyName"}))

	jobs, err := db.ListJobs(context.Background(), JobFilter{})
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestGetJob(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs\s+WHERE id = \$1`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(1, "J1", 1, "0.1", "c1"))
	mock.ExpectQuery(`SELECT .+ FROM companies\s+WHERE handle = \$1`).WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "description", "numEmployees", "logoUrl"}).
			AddRow("c1", "C1", "Desc1", 1, "http://c1.img"))

	job, err := db.GetJob(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, job.ID)
	require.NotNil(t, job.Company)
	assert.Equal(t, "c1", job.Company.Handle)
	assert.Equal(t, 1, *job.Company.NumEmployees)
	assert.Equal(t, "http://c1.img", *job.Company.LogoURL)
}

func TestGetJob_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs`).WithArgs(0).WillReturnError(sql.ErrNoRows)

	_, err := db.GetJob(context.Background(), 0)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "job not found: 0", err.Error())
}

func TestUpdateJob(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE jobs\s+SET "title"=\$1, "salary"=\$2\s+WHERE id = \$3`).
		WithArgs("Updated Job", 10, 1).
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(1, "Updated Job", 10, "0.1", "c1"))

	var data sqlutil.Fields
	data.Set("title", "Updated Job")
	data.Set("salary", 10)

	job, err := db.UpdateJob(context.Background(), 1, data)
	require.NoError(t, err)
	assert.Equal(t, "Updated Job", job.Title)
	assert.Equal(t, 10, *job.Salary)
}

func TestUpdateJob_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE jobs`).WithArgs("x", 0).WillReturnError(sql.ErrNoRows)

	var data sqlutil.Fields
	data.Set("title", "x")

	_, err := db.UpdateJob(context.Background(), 0, data)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestUpdateJob_RejectsBeforeQuerying(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := db.UpdateJob(context.Background(), 1, nil)
	assert.True(t, errors.Is(err, sqlutil.ErrMissingData))

	var data sqlutil.Fields
	data.Set("companyHandle", "c2")
	_, err = db.UpdateJob(context.Background(), 1, data)
	var unknown *sqlutil.UnknownFieldError
	assert.True(t, errors.As(err, &unknown))
}

func TestDeleteJob(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`DELETE FROM jobs WHERE id = \$1 RETURNING id`).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	assert.NoError(t, db.DeleteJob(context.Background(), 4))
}

func TestDeleteJob_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`DELETE FROM jobs`).WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := db.DeleteJob(context.Background(), 0)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

// =============================================================================
// Projection
// =============================================================================

func TestNewJobDetail_DoesNotAliasCompany(t *testing.T) {
	company := &Company{Handle: "c1", Name: "C1"}
	job := Job{ID: 1, Title: "J1", CompanyHandle: "c1"}

	detail := NewJobDetail(job, company)
	company.Name = "changed"

	assert.Equal(t, "C1", detail.Company.Name)
	assert.Equal(t, "c1", job.CompanyHandle)
}

func TestNewJobDetail_NilCompany(t *testing.T) {
	detail := NewJobDetail(Job{ID: 2}, nil)
	assert.Nil(t, detail.Company)
}
