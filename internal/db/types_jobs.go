package db

// Job is a job posting row
type Job struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Salary        *int    `json:"salary"`
	Equity        *string `json:"equity"` // NUMERIC, kept as its decimal text
	CompanyHandle string  `json:"companyHandle"`
}

// JobListing is a job joined with the name of its owning company
type JobListing struct {
	Job
	CompanyName *string `json:"companyName"`
}

// Company is the owning company of a job posting
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// JobDetail is a job with its company nested in place of the handle
type JobDetail struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Salary  *int     `json:"salary"`
	Equity  *string  `json:"equity"`
	Company *Company `json:"company"`
}

// NewJobDetail projects a job and its company into a JobDetail. Neither
// argument is modified.
func NewJobDetail(job Job, company *Company) JobDetail {
	var c *Company
	if company != nil {
		cp := *company
		c = &cp
	}
	return JobDetail{
		ID:      job.ID,
		Title:   job.Title,
		Salary:  job.Salary,
		Equity:  job.Equity,
		Company: c,
	}
}

// NewJobInput is used when creating a job posting
type NewJobInput struct {
	Title         string
	Salary        *int
	Equity        *string
	CompanyHandle string
}

// JobFilter holds optional listing criteria. A nil field applies no constraint.
type JobFilter struct {
	MinSalary *int
	HasEquity *bool
	Title     *string
}

// JobUpdatableFields lists the fields a partial job update may touch.
var JobUpdatableFields = []string{"title", "salary", "equity"}
