package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/worldreach/careers/pkg/models"
)

func (r *SQLiteRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("admin is nil")
	}
	if a.Role == "" {
		a.Role = "administrator"
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO admins (username, role, password_hash, created) VALUES (?, ?, ?, ?)`,
		a.Username, a.Role, a.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, role, password_hash, created FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

func (r *SQLiteRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, role, password_hash, created FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

func (r *SQLiteRepo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM admins`).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.Role, &a.PasswordHash, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}
