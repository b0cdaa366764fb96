package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/worldreach/careers/internal/forms"
	"github.com/worldreach/careers/internal/listing"
	"github.com/worldreach/careers/pkg/models"
	"github.com/worldreach/careers/pkg/repository"
)

type JobsHandler struct {
	jobRepo   repository.JobRepo
	validator *forms.Validator
}

func NewJobsHandler(jr repository.JobRepo, v *forms.Validator) *JobsHandler {
	return &JobsHandler{jobRepo: jr, validator: v}
}

type jobListItem struct {
	models.Job
	Recent bool `json:"recent"`
}

type jobListResponse struct {
	Jobs  []jobListItem `json:"jobs"`
	Total int           `json:"total"`

	// dropdown values, computed over the unfiltered list
	Countries []string `json:"countries"`
	Types     []string `json:"types"`

	// banner target: the newest posting, present only when it is recent
	RecentJobID *int64 `json:"recent_job_id,omitempty"`
}

// ListJobs serves the public board: optional search/country/type filters,
// posted-descending order, a recent flag per job, and the banner target.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		logger.Error("list jobs", "err", err)
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := listing.Filter(jobs, q.Get("search"), q.Get("country"), q.Get("type"))

	now := time.Now()
	items := make([]jobListItem, 0, len(filtered))
	for _, j := range filtered {
		items = append(items, jobListItem{Job: j, Recent: listing.IsRecent(j.Posted, now)})
	}

	resp := jobListResponse{
		Jobs:      items,
		Total:     len(items),
		Countries: listing.Countries(jobs),
		Types:     listing.Types(jobs),
	}
	if newest := listing.MostRecent(jobs); newest != nil && listing.IsRecent(newest.Posted, now) {
		resp.RecentJobID = &newest.ID
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		logger.Error("get job", "err", err)
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, jobListItem{Job: *job, Recent: listing.IsRecent(job.Posted, time.Now())}, http.StatusOK)
}

type jobFormRequest struct {
	Title        string `json:"title"`
	Country      string `json:"country"`
	Location     string `json:"location"`
	Type         string `json:"type"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       string `json:"salary"`
}

// CreateJob validates the admin form payload against the fixed schema, splits
// the requirements textarea into an ordered list and stamps the posted date.
func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeJobForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := &models.Job{
		Title:        form.Title,
		Country:      form.Country,
		Location:     form.Location,
		Type:         form.Type,
		Duration:     form.Duration,
		Description:  form.Description,
		Requirements: forms.SplitRequirements(form.Requirements),
		Salary:       form.Salary,
	}

	id, err := h.jobRepo.CreateJob(r.Context(), job)
	if err != nil {
		logger.Error("create job", "err", err)
		http.Error(w, "failed to create job", http.StatusInternalServerError)
		return
	}
	job.ID = id

	writeJSON(w, job, http.StatusCreated)
}

// UpdateJob replaces the mutable fields of an existing posting. The id and
// the original posted date stay as they were.
func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	existing, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		logger.Error("load job for update", "err", err)
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	form, err := h.decodeJobForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing.Title = form.Title
	existing.Country = form.Country
	existing.Location = form.Location
	existing.Type = form.Type
	existing.Duration = form.Duration
	existing.Description = form.Description
	existing.Requirements = forms.SplitRequirements(form.Requirements)
	existing.Salary = form.Salary

	if err := h.jobRepo.UpdateJob(r.Context(), existing); err != nil {
		logger.Error("update job", "err", err)
		http.Error(w, "failed to update job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, existing, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		logger.Error("delete job", "err", err)
		http.Error(w, "failed to delete job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *JobsHandler) decodeJobForm(r *http.Request) (*jobFormRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("invalid request")
	}

	if err := h.validator.ValidateJob(r.Context(), body); err != nil {
		return nil, err
	}

	var form jobFormRequest
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, fmt.Errorf("invalid request")
	}

	return &form, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
