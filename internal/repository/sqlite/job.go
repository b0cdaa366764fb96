package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/worldreach/careers/pkg/models"
)

const jobColumns = `id, title, country, location, type, duration, posted, description, requirements, salary`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	reqs, err := json.Marshal(j.Requirements)
	if err != nil {
		return 0, fmt.Errorf("marshal requirements: %w", err)
	}
	if j.Posted == 0 {
		j.Posted = now()
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO jobs (title, country, location, type, duration, posted, description, requirements, salary) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.Country, j.Location, j.Type, j.Duration, j.Posted, j.Description, string(reqs), j.Salary)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

// ListJobs returns all jobs ordered by posted date descending.
func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

// UpdateJob replaces the mutable job fields in place. The id and the original
// posted date are preserved.
func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	reqs, err := json.Marshal(j.Requirements)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}

	res, err := r.conn.Exec(ctx,
		`UPDATE jobs SET title = ?, country = ?, location = ?, type = ?, duration = ?, description = ?, requirements = ?, salary = ? WHERE id = ?`,
		j.Title, j.Country, j.Location, j.Type, j.Duration, j.Description, string(reqs), j.Salary, j.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func scanJob(scan func(...any) error) (*models.Job, error) {
	var (
		j    models.Job
		reqs sql.NullString
	)
	if err := scan(&j.ID, &j.Title, &j.Country, &j.Location, &j.Type, &j.Duration, &j.Posted, &j.Description, &reqs, &j.Salary); err != nil {
		return nil, err
	}

	j.Requirements = []string{}
	if reqs.Valid && reqs.String != "" {
		if err := json.Unmarshal([]byte(reqs.String), &j.Requirements); err != nil {
			return nil, fmt.Errorf("unmarshal requirements: %w", err)
		}
	}

	return &j, nil
}
