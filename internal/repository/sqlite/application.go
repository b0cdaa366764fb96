package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/worldreach/careers/pkg/models"
)

const applicationColumns = `id, full_name, email, phone, country, job_interest, job_id, job_title, job_country, job_location, job_type, job_salary, passport_path, cv_path, certificates_path, created`

// CreateApplication inserts a single application row. Applications are
// write-once: there is no update or delete.
func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if a.Created == 0 {
		a.Created = now()
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO applications (full_name, email, phone, country, job_interest, job_id, job_title, job_country, job_location, job_type, job_salary, passport_path, cv_path, certificates_path, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FullName, a.Email, a.Phone, a.Country, a.JobInterest,
		a.JobID, a.JobTitle, a.JobCountry, a.JobLocation, a.JobType, a.JobSalary,
		a.PassportPath, a.CVPath, a.CertificatesPath, a.Created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// ListApplications returns all applications ordered by creation time descending.
func (r *SQLiteRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		var (
			a                   models.Application
			passport, cv, certs sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.Country, &a.JobInterest,
			&a.JobID, &a.JobTitle, &a.JobCountry, &a.JobLocation, &a.JobType, &a.JobSalary,
			&passport, &cv, &certs, &a.Created); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if passport.Valid {
			a.PassportPath = &passport.String
		}
		if cv.Valid {
			a.CVPath = &cv.String
		}
		if certs.Valid {
			a.CertificatesPath = &certs.String
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
