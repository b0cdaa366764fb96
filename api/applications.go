package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/worldreach/careers/internal/storage"
	"github.com/worldreach/careers/pkg/models"
	"github.com/worldreach/careers/pkg/repository"
)

// three documents at the storage cap plus form fields
const maxSubmissionBytes = 3*storage.MaxDocumentSize + 1<<20

// documentFields are the optional upload slots on the application form, in
// the order their paths land on the application row.
var documentFields = [3]string{"passport", "cv", "certificates"}

type ApplicationsHandler struct {
	appRepo repository.ApplicationRepo
	jobRepo repository.JobRepo
	docs    storage.DocumentStore
}

func NewApplicationsHandler(ar repository.ApplicationRepo, jr repository.JobRepo, ds storage.DocumentStore) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, jobRepo: jr, docs: ds}
}

type submitResponse struct {
	ID int64 `json:"id"`
}

// Submit handles a public application: validates the applicant fields and the
// selected job before any write, stores the attached documents, then inserts
// one application row carrying the job snapshot. Documents already stored are
// not removed when a later step fails; the applicant resubmits manually.
func (h *ApplicationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	app := &models.Application{
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Country:  strings.TrimSpace(r.FormValue("country")),
	}
	if app.FullName == "" || app.Email == "" || app.Phone == "" || app.Country == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	jobID, err := strconv.ParseInt(r.FormValue("job_id"), 10, 64)
	if err != nil || jobID <= 0 {
		http.Error(w, "a job must be selected", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	job, err := h.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		logger.Error("load job for application", "err", err)
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "a job must be selected", http.StatusBadRequest)
		return
	}

	// snapshot the job as it is right now
	app.JobInterest = job.Title
	app.JobID = job.ID
	app.JobTitle = job.Title
	app.JobCountry = job.Country
	app.JobLocation = job.Location
	app.JobType = job.Type
	app.JobSalary = job.Salary

	paths := [len(documentFields)]*string{}
	for i, field := range documentFields {
		p, err := h.saveDocument(r, field)
		if err != nil {
			if errors.Is(err, storage.ErrTooLarge) {
				http.Error(w, fmt.Sprintf("%s file exceeds the 5MB limit", field), http.StatusBadRequest)
				return
			}
			logger.Error("store document", "field", field, "err", err)
			http.Error(w, fmt.Sprintf("failed to store %s file: %v", field, err), http.StatusInternalServerError)
			return
		}
		paths[i] = p
	}
	app.PassportPath, app.CVPath, app.CertificatesPath = paths[0], paths[1], paths[2]

	id, err := h.appRepo.CreateApplication(ctx, app)
	if err != nil {
		logger.Error("create application", "err", err)
		http.Error(w, fmt.Sprintf("failed to submit application: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, submitResponse{ID: id}, http.StatusCreated)
}

// saveDocument stores one optional upload slot; a missing file yields a nil
// path, not an error.
func (h *ApplicationsHandler) saveDocument(r *http.Request, field string) (*string, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	if fh.Size > storage.MaxDocumentSize {
		return nil, storage.ErrTooLarge
	}

	path, err := h.docs.Save(r.Context(), field, fh.Filename, f)
	if err != nil {
		return nil, err
	}

	return &path, nil
}

// ListApplications serves the admin dashboard view of submissions, newest
// first.
func (h *ApplicationsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appRepo.ListApplications(r.Context())
	if err != nil {
		logger.Error("list applications", "err", err)
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}

	writeJSON(w, map[string]any{"total": len(apps), "items": apps}, http.StatusOK)
}
