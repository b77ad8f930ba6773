package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetCompany retrieves a company by its handle
func (db *DB) GetCompany(ctx context.Context, handle string) (*Company, error) {
	var (
		c            Company
		description  sql.NullString
		numEmployees sql.NullInt64
		logoURL      sql.NullString
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT handle,
		        name,
		        description,
		        num_employees AS "numEmployees",
		        logo_url AS "logoUrl"
		 FROM companies
		 WHERE handle = $1`,
		handle,
	).Scan(&c.Handle, &c.Name, &description, &numEmployees, &logoURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "company", ID: handle}
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	c.Description = nullString(description)
	c.NumEmployees = nullInt(numEmployees)
	c.LogoURL = nullString(logoURL)
	return &c, nil
}
