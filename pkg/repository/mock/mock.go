package mock

import (
	"context"
	"io"
	"sort"

	"github.com/worldreach/careers/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	JobRepo   *mockJobRepo
	AppRepo   *mockApplicationRepo
	AdminRepo *mockAdminRepo
	DocStore  *mockDocStore
}

func NewMocks() *Mocks {
	return &Mocks{
		JobRepo:   &mockJobRepo{},
		AppRepo:   &mockApplicationRepo{},
		AdminRepo: &mockAdminRepo{},
		DocStore:  &mockDocStore{},
	}
}

type mockJobRepo struct {
	Jobs      []models.Job
	nextID    int64
	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

func (m *mockJobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	j.ID = m.nextID
	m.Jobs = append(m.Jobs, *j)
	return j.ID, nil
}

func (m *mockJobRepo) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	for i := range m.Jobs {
		if m.Jobs[i].ID == id {
			j := m.Jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *mockJobRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Job, len(m.Jobs))
	copy(out, m.Jobs)
	sort.SliceStable(out, func(i, k int) bool { return out[i].Posted > out[k].Posted })
	return out, nil
}

func (m *mockJobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Jobs {
		if m.Jobs[i].ID == j.ID {
			posted := m.Jobs[i].Posted
			m.Jobs[i] = *j
			m.Jobs[i].Posted = posted
			return nil
		}
	}
	return nil
}

func (m *mockJobRepo) DeleteJob(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	out := m.Jobs[:0]
	for _, j := range m.Jobs {
		if j.ID != id {
			out = append(out, j)
		}
	}
	m.Jobs = out
	return nil
}

func (m *mockJobRepo) CountJobs(ctx context.Context) (int64, error) {
	return int64(len(m.Jobs)), nil
}

type mockApplicationRepo struct {
	Stored    []models.Application
	CreateErr error
	ListErr   error
}

func (m *mockApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	a.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *mockApplicationRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Application, len(m.Stored))
	copy(out, m.Stored)
	sort.SliceStable(out, func(i, k int) bool { return out[i].Created > out[k].Created })
	return out, nil
}

type mockAdminRepo struct {
	Stored    *models.Admin
	CreateErr error
}

func (m *mockAdminRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.Admin{ID: 1, Username: a.Username, Role: a.Role, PasswordHash: a.PasswordHash}
	return 1, nil
}

func (m *mockAdminRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockAdminRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if m.Stored != nil && m.Stored.Username == username {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockAdminRepo) CountAdmins(ctx context.Context) (int64, error) {
	if m.Stored == nil {
		return 0, nil
	}
	return 1, nil
}

type mockDocStore struct {
	Saved   map[string][]byte
	SaveErr error
}

func (m *mockDocStore) Save(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.Saved == nil {
		m.Saved = make(map[string][]byte)
	}
	name := "stored_" + field + "_" + filename
	m.Saved[name] = b
	return name, nil
}
