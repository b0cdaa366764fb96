// Package listing holds the pure job-list logic shared by the public board
// and the admin dashboard: search/attribute filtering and the "recent
// posting" rule behind the new-jobs banner.
package listing

import (
	"strings"
	"time"

	"github.com/worldreach/careers/pkg/models"
)

// RecentWindowDays is the age limit for flagging a posting as recent. A job
// exactly this many whole days old is no longer recent.
const RecentWindowDays = 10

// Filter returns the jobs matching all given criteria. The term matches
// case-insensitively against title, country, location and type; country and
// jobType require exact equality. Empty criteria are ignored, so the filters
// can be applied in any order with the same result.
func Filter(jobs []models.Job, term, country, jobType string) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	term = strings.ToLower(strings.TrimSpace(term))

	for _, j := range jobs {
		if country != "" && j.Country != country {
			continue
		}
		if jobType != "" && j.Type != jobType {
			continue
		}
		if term != "" && !matchesTerm(&j, term) {
			continue
		}
		out = append(out, j)
	}

	return out
}

func matchesTerm(j *models.Job, term string) bool {
	for _, s := range []string{j.Title, j.Country, j.Location, j.Type} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}

	return false
}

// IsRecent reports whether a posting timestamp (unix milliseconds) is less
// than RecentWindowDays whole days before now.
func IsRecent(posted int64, now time.Time) bool {
	age := now.Sub(time.UnixMilli(posted))
	return age/(24*time.Hour) < RecentWindowDays
}

// MostRecent returns the job with the greatest posted timestamp, or nil for
// an empty list. The banner on the public board jumps to this job.
func MostRecent(jobs []models.Job) *models.Job {
	if len(jobs) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(jobs); i++ {
		if jobs[i].Posted > jobs[best].Posted {
			best = i
		}
	}

	return &jobs[best]
}

// Countries returns the distinct job countries in first-seen order.
func Countries(jobs []models.Job) []string {
	return distinct(jobs, func(j *models.Job) string { return j.Country })
}

// Types returns the distinct job types in first-seen order.
func Types(jobs []models.Job) []string {
	return distinct(jobs, func(j *models.Job) string { return j.Type })
}

func distinct(jobs []models.Job, key func(*models.Job) string) []string {
	seen := make(map[string]bool, len(jobs))
	out := make([]string, 0, len(jobs))
	for i := range jobs {
		k := key(&jobs[i])
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}

	return out
}
