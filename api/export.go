package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/worldreach/careers/pkg/repository"
)

type ExportHandler struct {
	appRepo repository.ApplicationRepo
}

func NewExportHandler(ar repository.ApplicationRepo) *ExportHandler {
	return &ExportHandler{appRepo: ar}
}

// csvHeader is the fixed column set of the export, in order.
var csvHeader = []string{
	"Full Name",
	"Email",
	"Phone",
	"Country",
	"Job Interest",
	"Job ID",
	"Job Title",
	"Job Country",
	"Job Location",
	"Job Type",
	"Job Salary",
	"Submission Date",
}

// ExportApplications streams every application row as a CSV download, newest
// first. Any data failure maps to a generic 500 JSON body; the underlying
// error stays in the server log.
func (h *ExportHandler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appRepo.ListApplications(r.Context())
	if err != nil {
		logger.Error("export applications", "err", err)
		writeError(w, "failed to export applications", http.StatusInternalServerError)
		return
	}

	filename := "applications-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		logger.Error("write csv header", "err", err)
		return
	}

	for _, a := range apps {
		record := []string{
			a.FullName,
			a.Email,
			a.Phone,
			a.Country,
			a.JobInterest,
			strconv.FormatInt(a.JobID, 10),
			a.JobTitle,
			a.JobCountry,
			a.JobLocation,
			a.JobType,
			a.JobSalary,
			time.UnixMilli(a.Created).UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			logger.Error("write csv record", "err", err)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error("flush csv", "err", err)
	}
}
