// Package types provides request payload definitions for the job board API.
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewJobRequest is the body of POST /jobs.
type NewJobRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Salary        *int    `json:"salary,omitempty" validate:"omitempty,gte=0"`
	Equity        *string `json:"equity,omitempty" validate:"omitempty,numeric"`
	CompanyHandle string  `json:"companyHandle" validate:"required,max=25"`
}

// Validate validates the NewJobRequest using the validator.
func (r *NewJobRequest) Validate() error {
	return validate.Struct(r)
}

// JobSearchRequest holds the GET /jobs query filters.
type JobSearchRequest struct {
	MinSalary *int    `json:"minSalary,omitempty" validate:"omitempty,gte=0"`
	HasEquity bool    `json:"hasEquity"`
	Title     *string `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
}

// Validate validates the JobSearchRequest using the validator.
func (r *JobSearchRequest) Validate() error {
	return validate.Struct(r)
}

// JobUpdateValues checks the typed values of a PATCH /jobs/{id} body.
// Field presence and order are handled separately.
type JobUpdateValues struct {
	Title  *string `json:"title" validate:"omitnil,min=1,max=200"`
	Salary *int    `json:"salary" validate:"omitempty,gte=0"`
	Equity *string `json:"equity" validate:"omitempty,numeric"`
}

// Validate validates the JobUpdateValues using the validator.
func (r *JobUpdateValues) Validate() error {
	return validate.Struct(r)
}
