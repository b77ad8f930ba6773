package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobboard/internal/sqlutil"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const listJobsBase = `SELECT j.id,
       j.title,
       j.salary,
       j.equity,
       j.company_handle AS "companyHandle",
       c.name AS "companyName"
FROM jobs j
  LEFT JOIN companies AS c ON c.handle = j.company_handle`

const jobReturning = `RETURNING id, title, salary, equity, company_handle AS "companyHandle"`

var jobColumns = sqlutil.ColumnMap{"companyHandle": "company_handle"}

// BuildListQuery renders the job listing statement for filter. Predicates
// are added in a fixed order (salary, equity, title) and placeholders count
// only the arguments that precede them.
func BuildListQuery(filter JobFilter) Query {
	var where []string
	var args []any

	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		where = append(where, "salary >= $"+strconv.Itoa(len(args)))
	}

	if filter.HasEquity != nil && *filter.HasEquity {
		where = append(where, "equity > 0")
	}

	if filter.Title != nil {
		args = append(args, "%"+*filter.Title+"%")
		where = append(where, "title ILIKE $"+strconv.Itoa(len(args)))
	}

	query := listJobsBase
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title"

	return Query{SQL: query, Args: args}
}

// CreateJob inserts a job posting and returns the stored row
func (db *DB) CreateJob(ctx context.Context, input NewJobInput) (*Job, error) {
	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 `+jobReturning,
		input.Title, input.Salary, input.Equity, input.CompanyHandle,
	)
	job, err := scanJob(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &NotFoundError{Resource: "company", ID: input.CompanyHandle}
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs matching filter, ordered by title
func (db *DB) ListJobs(ctx context.Context, filter JobFilter) ([]JobListing, error) {
	q := BuildListQuery(filter)

	rows, err := db.conn.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []JobListing{}
	for rows.Next() {
		var (
			j           JobListing
			salary      sql.NullInt64
			equity      sql.NullString
			companyName sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle, &companyName); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.Salary = nullInt(salary)
		j.Equity = nullString(equity)
		j.CompanyName = nullString(companyName)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns a job with its company nested
func (db *DB) GetJob(ctx context.Context, id int) (*JobDetail, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, title, salary, equity, company_handle AS "companyHandle"
		 FROM jobs
		 WHERE id = $1`,
		id,
	)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "job", ID: id}
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	company, err := db.GetCompany(ctx, job.CompanyHandle)
	if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
		company = nil
	}

	detail := NewJobDetail(*job, company)
	return &detail, nil
}

// UpdateJob applies a partial update. Only JobUpdatableFields are accepted.
func (db *DB) UpdateJob(ctx context.Context, id int, data sqlutil.Fields) (*Job, error) {
	if err := data.Restrict(JobUpdatableFields...); err != nil {
		return nil, err
	}

	frag, err := sqlutil.PartialUpdate(data, jobColumns)
	if err != nil {
		return nil, err
	}

	query := `UPDATE jobs
		 SET ` + frag.Clause + `
		 WHERE id = ` + frag.NextPlaceholder() + `
		 ` + jobReturning

	row := db.conn.QueryRowContext(ctx, query, append(frag.Values, id)...)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "job", ID: id}
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job posting
func (db *DB) DeleteJob(ctx context.Context, id int) error {
	var deleted int
	err := db.conn.QueryRowContext(ctx,
		`DELETE FROM jobs WHERE id = $1 RETURNING id`,
		id,
	).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Resource: "job", ID: id}
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func scanJob(row *sql.Row) (*Job, error) {
	var (
		j      Job
		salary sql.NullInt64
		equity sql.NullString
	)
	if err := row.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	j.Salary = nullInt(salary)
	j.Equity = nullString(equity)
	return &j, nil
}
