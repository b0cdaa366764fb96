package sqlite_test

import (
	"context"
	"testing"
	"time"

	dbpkg "github.com/worldreach/careers/internal/db"
	sqlite "github.com/worldreach/careers/internal/repository/sqlite"
	"github.com/worldreach/careers/pkg/models"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	// create schema required by the repo
	stmts := []string{
		`DROP TABLE IF EXISTS jobs;`,
		`DROP TABLE IF EXISTS applications;`,
		`DROP TABLE IF EXISTS admins;`,
		`CREATE TABLE jobs (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT, country TEXT, location TEXT, type TEXT, duration TEXT, posted INTEGER, description TEXT, requirements TEXT, salary TEXT);`,
		`CREATE TABLE applications (id INTEGER PRIMARY KEY AUTOINCREMENT, full_name TEXT, email TEXT, phone TEXT, country TEXT, job_interest TEXT, job_id INTEGER, job_title TEXT, job_country TEXT, job_location TEXT, job_type TEXT, job_salary TEXT, passport_path TEXT, cv_path TEXT, certificates_path TEXT, created INTEGER);`,
		`CREATE TABLE admins (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT UNIQUE, role TEXT, password_hash TEXT, created INTEGER);`,
	}

	for _, s := range stmts {
		if _, err := d.Exec(ctx, s); err != nil {
			d.Close()
			t.Fatalf("failed to exec schema: %v", err)
		}
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func TestJobCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	// nil job should error
	if _, err := repo.CreateJob(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil job")
	}

	// Non-existing ID should return nil, nil
	got, err := repo.GetJobByID(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error when getting non-existing ID")
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing ID got: %#v", got)
	}

	j := &models.Job{
		Title:        "Electrician",
		Country:      "Malaysia",
		Location:     "Kuala Lumpur",
		Type:         "Electrician",
		Duration:     "2 years",
		Description:  "Commercial and residential projects.",
		Requirements: []string{"Minimum 3 years experience", "Electrical certification"},
		Salary:       "MYR 3,500 - 4,500 per month",
	}
	id, err := repo.CreateJob(ctx, j)
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}
	if j.Posted == 0 {
		t.Fatalf("expected posted stamp to be set on create")
	}

	got, err = repo.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID error: %v", err)
	}
	if got == nil || got.Title != j.Title {
		t.Fatalf("GetJobByID wrong result: %#v", got)
	}
	if len(got.Requirements) != 2 || got.Requirements[0] != "Minimum 3 years experience" {
		t.Fatalf("requirements not round-tripped in order: %#v", got.Requirements)
	}

	// update replaces fields but preserves id and posted date
	originalPosted := got.Posted
	got.Title = "Senior Electrician"
	got.Requirements = []string{"Minimum 5 years experience"}
	if err := repo.UpdateJob(ctx, got); err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}

	after, err := repo.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID after update error: %v", err)
	}
	if after.Title != "Senior Electrician" || len(after.Requirements) != 1 {
		t.Fatalf("update not applied: %#v", after)
	}
	if after.Posted != originalPosted {
		t.Fatalf("update must preserve posted date: had %d got %d", originalPosted, after.Posted)
	}

	if err := repo.UpdateJob(ctx, nil); err == nil {
		t.Fatalf("expected error when updating nil job")
	}
	if err := repo.UpdateJob(ctx, &models.Job{ID: 9999, Title: "x"}); err == nil {
		t.Fatalf("expected error when updating missing job")
	}

	// delete
	if err := repo.DeleteJob(ctx, id); err != nil {
		t.Fatalf("DeleteJob error: %v", err)
	}

	gone, err := repo.GetJobByID(ctx, id)
	if err != nil {
		t.Fatalf("GetJobByID after delete error: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected nil after delete got: %#v", gone)
	}
}

func TestListJobsOrder(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	nowMs := time.Now().UTC().UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)

	older := &models.Job{Title: "Old", Country: "Japan", Posted: nowMs - 20*day}
	newer := &models.Job{Title: "New", Country: "Malaysia", Posted: nowMs - 2*day}
	if _, err := repo.CreateJob(ctx, older); err != nil {
		t.Fatalf("CreateJob older: %v", err)
	}
	if _, err := repo.CreateJob(ctx, newer); err != nil {
		t.Fatalf("CreateJob newer: %v", err)
	}

	jobs, err := repo.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs got %d", len(jobs))
	}
	if jobs[0].Title != "New" || jobs[1].Title != "Old" {
		t.Fatalf("expected posted-descending order, got %q then %q", jobs[0].Title, jobs[1].Title)
	}

	n, err := repo.CountJobs(ctx)
	if err != nil || n != 2 {
		t.Fatalf("CountJobs = %d, %v", n, err)
	}
}

func TestApplicationCreateAndList(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateApplication(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil application")
	}

	cv := "1700000000000_cv_ab12cd34.pdf"
	a := &models.Application{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+60123456789",
		Country:     "Indonesia",
		JobInterest: "Electrician",
		JobID:       1,
		JobTitle:    "Electrician",
		JobCountry:  "Malaysia",
		JobLocation: "Kuala Lumpur",
		JobType:     "Electrician",
		JobSalary:   "MYR 3,500 - 4,500 per month",
		CVPath:      &cv,
	}
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	b := &models.Application{FullName: "John Roe", Email: "john@example.com", Phone: "1", Country: "Nepal", JobID: 1, Created: a.Created + 1000}
	if _, err := repo.CreateApplication(ctx, b); err != nil {
		t.Fatalf("CreateApplication second: %v", err)
	}

	apps, err := repo.ListApplications(ctx)
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications got %d", len(apps))
	}
	if apps[0].FullName != "John Roe" {
		t.Fatalf("expected created-descending order, got %q first", apps[0].FullName)
	}
	if apps[1].CVPath == nil || *apps[1].CVPath != cv {
		t.Fatalf("cv path not round-tripped: %#v", apps[1].CVPath)
	}
	if apps[1].PassportPath != nil {
		t.Fatalf("expected nil passport path, got %q", *apps[1].PassportPath)
	}
	if apps[1].JobTitle != "Electrician" || apps[1].JobSalary != a.JobSalary {
		t.Fatalf("job snapshot not preserved: %#v", apps[1])
	}
}

func TestAdminRepo(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateAdmin(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil admin")
	}

	n, err := repo.CountAdmins(ctx)
	if err != nil || n != 0 {
		t.Fatalf("CountAdmins = %d, %v", n, err)
	}

	a := &models.Admin{Username: "admin", PasswordHash: "hash"}
	id, err := repo.CreateAdmin(ctx, a)
	if err != nil {
		t.Fatalf("CreateAdmin error: %v", err)
	}

	got, err := repo.GetAdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetAdminByUsername error: %v", err)
	}
	if got == nil || got.ID != id {
		t.Fatalf("GetAdminByUsername wrong result: %#v", got)
	}
	if got.Role != "administrator" {
		t.Fatalf("expected default role, got %q", got.Role)
	}

	byID, err := repo.GetAdminByID(ctx, id)
	if err != nil || byID == nil || byID.Username != "admin" {
		t.Fatalf("GetAdminByID wrong result: %#v, %v", byID, err)
	}

	missing, err := repo.GetAdminByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("expected no error for missing admin")
	}
	if missing != nil {
		t.Fatalf("expected nil for missing admin got: %#v", missing)
	}
}

// Deleting a job must not cascade into applications: the historical snapshot
// stays readable.
func TestDeleteJobKeepsApplications(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	j := &models.Job{Title: "Welder", Country: "Malaysia"}
	id, err := repo.CreateJob(ctx, j)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	a := &models.Application{FullName: "Jane", Email: "j@e.com", Phone: "1", Country: "Nepal", JobID: id, JobTitle: "Welder"}
	if _, err := repo.CreateApplication(ctx, a); err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}

	if err := repo.DeleteJob(ctx, id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}

	apps, err := repo.ListApplications(ctx)
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if len(apps) != 1 || apps[0].JobTitle != "Welder" {
		t.Fatalf("application snapshot lost after job delete: %#v", apps)
	}
}
