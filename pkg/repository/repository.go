package repository

import (
	"context"

	"github.com/worldreach/careers/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	CountJobs(ctx context.Context) (int64, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
}

type AdminRepo interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int64, error)
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
}
