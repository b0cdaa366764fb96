package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type Job struct {
	ID           int64    `json:"id" db:"id"`
	Title        string   `json:"title" db:"title" validate:"required"`
	Country      string   `json:"country" db:"country" validate:"required"`
	Location     string   `json:"location" db:"location"`
	Type         string   `json:"type" db:"type"`
	Duration     string   `json:"duration" db:"duration"`
	Posted       int64    `json:"posted" db:"posted"`
	Description  string   `json:"description" db:"description"`
	Requirements []string `json:"requirements" db:"requirements"`
	Salary       string   `json:"salary" db:"salary"`
}

// Application holds the applicant fields plus a snapshot of the job taken at
// submission time. The snapshot never tracks later edits to the job row, so an
// application always reflects the posting as it was applied for.
type Application struct {
	ID          int64  `json:"id" db:"id"`
	FullName    string `json:"full_name" db:"full_name" validate:"required"`
	Email       string `json:"email" db:"email" validate:"required,email"`
	Phone       string `json:"phone" db:"phone" validate:"required"`
	Country     string `json:"country" db:"country" validate:"required"`
	JobInterest string `json:"job_interest" db:"job_interest"`

	JobID       int64  `json:"job_id" db:"job_id"`
	JobTitle    string `json:"job_title" db:"job_title"`
	JobCountry  string `json:"job_country" db:"job_country"`
	JobLocation string `json:"job_location" db:"job_location"`
	JobType     string `json:"job_type" db:"job_type"`
	JobSalary   string `json:"job_salary" db:"job_salary"`

	PassportPath     *string `json:"passport_path,omitempty" db:"passport_path"`
	CVPath           *string `json:"cv_path,omitempty" db:"cv_path"`
	CertificatesPath *string `json:"certificates_path,omitempty" db:"certificates_path"`

	Created int64 `json:"created" db:"created"`
}

type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}
