package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agora/emailer"
	"agora/models"
)

type recordingMailer struct {
	accepted []string
	rejected []string
	received []string
}

func (m *recordingMailer) SendApplicationAccepted(ctx context.Context, to string, mail emailer.ApplicationMail) error {
	m.accepted = append(m.accepted, to)
	return nil
}

func (m *recordingMailer) SendApplicationRejected(ctx context.Context, to string, mail emailer.ApplicationMail) error {
	m.rejected = append(m.rejected, to)
	return nil
}

func (m *recordingMailer) SendApplicationReceived(ctx context.Context, to string, mail emailer.ApplicationMail) error {
	m.received = append(m.received, to)
	return nil
}

func decisionFixture() (*fakeStore, *recordingMailer, *Handler) {
	store := newFakeStore()
	store.users["u1"] = models.User{UserID: "u1", Username: "poster", Email: "poster@example.com"}
	store.users["u2"] = models.User{UserID: "u2", Username: "applicant", Name: "App Licant", Email: "applicant@example.com"}
	seedJob(store, "job_a", "u1", "Baker", time.Now())
	store.applications["app1"] = models.Application{
		ApplicationID: "app1",
		BasicInfo:     models.ApplicationBasicInfo{JobID: "job_a", UserID: "u2", Status: models.ApplicationPending},
	}

	mailer := &recordingMailer{}
	return store, mailer, NewHandler(NewService(store), mailer)
}

func TestUpdateApplicationStatusAcceptedSendsOneEmail(t *testing.T) {
	_, mailer, h := decisionFixture()

	body := `{"applicationId":"app1","status":"accepted"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/jobs/myjobs/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.UpdateApplicationStatus(w, req, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mailer.accepted) != 1 || mailer.accepted[0] != "applicant@example.com" {
		t.Fatalf("expected exactly one acceptance email to the applicant, got %v", mailer.accepted)
	}
	if len(mailer.rejected) != 0 {
		t.Fatalf("no rejection email expected, got %v", mailer.rejected)
	}
}

func TestUpdateApplicationStatusRejectedSendsRejection(t *testing.T) {
	_, mailer, h := decisionFixture()

	body := `{"applicationId":"app1","status":"rejected"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/jobs/myjobs/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.UpdateApplicationStatus(w, req, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mailer.rejected) != 1 || mailer.rejected[0] != "applicant@example.com" {
		t.Fatalf("expected exactly one rejection email to the applicant, got %v", mailer.rejected)
	}
	if len(mailer.accepted) != 0 {
		t.Fatalf("no acceptance email expected, got %v", mailer.accepted)
	}
}

func TestUpdateApplicationStatusOtherValueSendsNothing(t *testing.T) {
	store, mailer, h := decisionFixture()

	body := `{"applicationId":"app1","status":"pending"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/jobs/myjobs/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.UpdateApplicationStatus(w, req, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mailer.accepted)+len(mailer.rejected) != 0 {
		t.Fatalf("no decision email expected, got %v / %v", mailer.accepted, mailer.rejected)
	}
	if store.applications["app1"].BasicInfo.Status != models.ApplicationPending {
		t.Fatalf("status not written, got %q", store.applications["app1"].BasicInfo.Status)
	}
}

func TestUpdateApplicationStatusMissingApplication(t *testing.T) {
	_, mailer, h := decisionFixture()

	body := `{"applicationId":"ghost","status":"accepted"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/jobs/myjobs/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.UpdateApplicationStatus(w, req, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if len(mailer.accepted) != 0 {
		t.Fatalf("no email expected on failed update, got %v", mailer.accepted)
	}
}

func TestMyJobsApplicationsParameterExclusivity(t *testing.T) {
	_, _, h := decisionFixture()

	cases := []struct {
		name  string
		query string
		code  int
	}{
		{"both", "?userId=u1&jobId=job_a", http.StatusBadRequest},
		{"neither", "", http.StatusBadRequest},
		{"userOnly", "?userId=u1", http.StatusOK},
		{"jobOnly", "?jobId=job_a", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/jobs/myjobs/applications"+tc.query, nil)
			w := httptest.NewRecorder()
			h.MyJobsApplications(w, req, nil)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestMyJobsApplicationsUserBranchShape(t *testing.T) {
	_, _, h := decisionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/myjobs/applications?userId=u1", nil)
	w := httptest.NewRecorder()
	h.MyJobsApplications(w, req, nil)

	var resp struct {
		Status string           `json:"status"`
		Jobs   []models.JobView `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected success status, got %q", resp.Status)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].BasicInfo.Title != "Baker" {
		t.Fatalf("unexpected jobs payload: %#v", resp.Jobs)
	}
	if len(resp.Jobs[0].Applications) != 1 {
		t.Fatalf("expected the posting's application inline, got %#v", resp.Jobs[0].Applications)
	}
}

func TestMyJobsApplicationsJobBranchShape(t *testing.T) {
	_, _, h := decisionFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/myjobs/applications?jobId=job_a", nil)
	w := httptest.NewRecorder()
	h.MyJobsApplications(w, req, nil)

	var resp struct {
		Status       string                   `json:"status"`
		Applications []models.ApplicationView `json:"applications"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Applications) != 1 || resp.Applications[0].Applicant.Username != "applicant" {
		t.Fatalf("unexpected applications payload: %#v", resp.Applications)
	}
}

func TestDeleteApplicationRequiresID(t *testing.T) {
	store, _, h := decisionFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/jobs/myjobs/applications", nil)
	w := httptest.NewRecorder()
	h.DeleteApplication(w, req, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without applicationId, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/jobs/myjobs/applications?applicationId=app1", nil)
	w = httptest.NewRecorder()
	h.DeleteApplication(w, req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, ok := store.applications["app1"]; ok {
		t.Fatal("application not deleted")
	}
}
