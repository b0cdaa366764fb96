package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/worldreach/careers/api"
	dbfs "github.com/worldreach/careers/db"
	"github.com/worldreach/careers/internal/config"
	dbpkg "github.com/worldreach/careers/internal/db"
	"github.com/worldreach/careers/internal/repository/sqlite"
	"github.com/worldreach/careers/internal/storage"
	"github.com/worldreach/careers/pkg/models"
)

// TestServerFlow exercises the wired router end to end against a real
// database: sign in, restore the session, publish a job, submit an
// application for it and export the result as CSV.
func TestServerFlow(t *testing.T) {
	ctx := context.Background()

	d, err := dbpkg.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer d.Close()

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("swordfish"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := sqlite.New(d, nil)
	if _, err := repo.CreateAdmin(ctx, &models.Admin{
		Username:     "admin",
		Role:         "administrator",
		PasswordHash: string(hash),
	}); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	docs, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("create disk store: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "routes-test-secret",
		TokenDuration: time.Hour,
	}
	router, err := api.SetupRoutes(cfg, "test", "now", d, docs)
	if err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	srv := httptest.NewServer(router)
	defer srv.Close()

	// sign in
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "swordfish"})
	resp, err := http.Post(srv.URL+"/v1/auth/signin", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("signin request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin status = %d", resp.StatusCode)
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	resp.Body.Close()
	if auth.Token == "" {
		t.Fatal("signin returned empty token")
	}

	// restore the session through the guard
	me := authedRequest(t, srv, auth.Token, "GET", "/v1/auth/me", "", nil)
	if me.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", me.StatusCode)
	}
	var profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(me.Body).Decode(&profile); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	me.Body.Close()
	if profile.Username != "admin" || profile.Role != "administrator" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	// publish a job
	jobForm, _ := json.Marshal(map[string]string{
		"title":    "Welder",
		"country":  "Poland",
		"location": "Gdansk",
		"type":     "Contract",
		"salary":   "$1500/month",
	})
	created := authedRequest(t, srv, auth.Token, "POST", "/v1/admin/jobs", "application/json", bytes.NewReader(jobForm))
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("create job status = %d", created.StatusCode)
	}
	var job models.Job
	if err := json.NewDecoder(created.Body).Decode(&job); err != nil {
		t.Fatalf("decode created job: %v", err)
	}
	created.Body.Close()
	if job.ID == 0 {
		t.Fatal("created job has no id")
	}

	// the new job must show up on the public listing as recent
	listResp, err := http.Get(srv.URL + "/v1/jobs")
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	var listing struct {
		Jobs []struct {
			models.Job
			Recent bool `json:"recent"`
		} `json:"jobs"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	listResp.Body.Close()
	if listing.Total < 1 || listing.Jobs[0].ID != job.ID || !listing.Jobs[0].Recent {
		t.Fatalf("expected new job first and recent, got %+v", listing.Jobs)
	}

	// submit an application with a CV attached
	var mb bytes.Buffer
	mw := multipart.NewWriter(&mb)
	for k, v := range map[string]string{
		"full_name": "Ana Costa",
		"email":     "ana@example.com",
		"phone":     "+351000000",
		"country":   "Portugal",
		"job_id":    fmt.Sprintf("%d", job.ID),
	} {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	fw, err := mw.CreateFormFile("cv", "cv.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 test"))
	mw.Close()

	submitted := authedRequest(t, srv, "", "POST", "/v1/applications", mw.FormDataContentType(), &mb)
	if submitted.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d", submitted.StatusCode)
	}
	submitted.Body.Close()

	// export must include the applicant with the job snapshot
	export := authedRequest(t, srv, auth.Token, "GET", "/export-applications", "", nil)
	if export.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", export.StatusCode)
	}
	if ct := export.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("export content type = %q", ct)
	}
	var csvBuf bytes.Buffer
	if _, err := csvBuf.ReadFrom(export.Body); err != nil {
		t.Fatalf("read export body: %v", err)
	}
	export.Body.Close()
	out := csvBuf.String()
	for _, want := range []string{"Ana Costa", "Welder", "Poland", "$1500/month"} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
}

func authedRequest(t *testing.T, srv *httptest.Server, token, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	var rd io.Reader
	if body == nil {
		rd = &bytes.Buffer{}
	} else {
		rd = body
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("build %s %s: %v", method, path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
