package jobs

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"agora/models"
)

// fakeStore keeps everything in maps and mimics the store contract, including
// newest-first ordering on job listings.
type fakeStore struct {
	jobs         map[string]models.Job
	questions    map[string][]models.JobQuestion
	applications map[string]models.Application
	users        map[string]models.User
	images       map[string]map[models.RoleTag]string
	educations   map[string][]models.Education
	experiences  map[string][]models.WorkExperience

	// failReads makes the batched child lookups fail while job listings succeed
	failReads bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:         map[string]models.Job{},
		questions:    map[string][]models.JobQuestion{},
		applications: map[string]models.Application{},
		users:        map[string]models.User{},
		images:       map[string]map[models.RoleTag]string{},
		educations:   map[string][]models.Education{},
		experiences:  map[string][]models.WorkExperience{},
	}
}

var errFake = fmt.Errorf("store down")

func (f *fakeStore) AllJobs(ctx context.Context) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		out = append(out, j)
	}
	sortJobsNewest(out)
	return out, nil
}

func (f *fakeStore) JobsByUser(ctx context.Context, userID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.BasicInfo.UserID == userID {
			out = append(out, j)
		}
	}
	sortJobsNewest(out)
	return out, nil
}

func sortJobsNewest(jobs []models.Job) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].BasicInfo.CreatedAt.After(jobs[j].BasicInfo.CreatedAt)
	})
}

func (f *fakeStore) JobByID(ctx context.Context, jobID string) (*models.Job, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (f *fakeStore) InsertJob(ctx context.Context, job models.Job, questions []models.JobQuestion) error {
	f.jobs[job.JobID] = job
	f.questions[job.JobID] = append(f.questions[job.JobID], questions...)
	return nil
}

func (f *fakeStore) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	j.BasicInfo.Status = status
	f.jobs[jobID] = j
	return nil
}

func (f *fakeStore) DeleteJob(ctx context.Context, jobID string) error {
	if _, ok := f.jobs[jobID]; !ok {
		return ErrNotFound
	}
	delete(f.jobs, jobID)
	delete(f.questions, jobID)
	return nil
}

func (f *fakeStore) QuestionsByJob(ctx context.Context, jobIDs []string) (map[string][]models.JobQuestion, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string][]models.JobQuestion{}
	for _, id := range jobIDs {
		if qs, ok := f.questions[id]; ok {
			out[id] = qs
		}
	}
	return out, nil
}

func (f *fakeStore) ApplicationsByJob(ctx context.Context, jobIDs []string) (map[string][]models.Application, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string][]models.Application{}
	for _, id := range jobIDs {
		for _, a := range f.applications {
			if a.BasicInfo.JobID == id {
				out[id] = append(out[id], a)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ApplicationByID(ctx context.Context, applicationID string) (*models.Application, error) {
	a, ok := f.applications[applicationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (f *fakeStore) InsertApplication(ctx context.Context, app models.Application) error {
	f.applications[app.ApplicationID] = app
	return nil
}

func (f *fakeStore) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	a, ok := f.applications[applicationID]
	if !ok {
		return ErrNotFound
	}
	a.BasicInfo.Status = status
	f.applications[applicationID] = a
	return nil
}

func (f *fakeStore) DeleteApplication(ctx context.Context, applicationID string) error {
	if _, ok := f.applications[applicationID]; !ok {
		return ErrNotFound
	}
	delete(f.applications, applicationID)
	return nil
}

func (f *fakeStore) UsersByID(ctx context.Context, userIDs []string) (map[string]models.User, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string]models.User{}
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeStore) ImageRolesByUser(ctx context.Context, userIDs []string) (map[string]map[models.RoleTag]string, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string]map[models.RoleTag]string{}
	for _, id := range userIDs {
		if imgs, ok := f.images[id]; ok {
			out[id] = imgs
		}
	}
	return out, nil
}

func (f *fakeStore) EducationsByUser(ctx context.Context, userIDs []string) (map[string][]models.Education, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string][]models.Education{}
	for _, id := range userIDs {
		if es, ok := f.educations[id]; ok {
			out[id] = es
		}
	}
	return out, nil
}

func (f *fakeStore) ExperiencesByUser(ctx context.Context, userIDs []string) (map[string][]models.WorkExperience, error) {
	if f.failReads {
		return nil, errFake
	}
	out := map[string][]models.WorkExperience{}
	for _, id := range userIDs {
		if ws, ok := f.experiences[id]; ok {
			out[id] = ws
		}
	}
	return out, nil
}

func seedJob(store *fakeStore, jobID, userID, title string, createdAt time.Time, questions ...string) {
	store.jobs[jobID] = models.Job{
		JobID: jobID,
		BasicInfo: models.JobBasicInfo{
			Title:     title,
			Status:    "open",
			UserID:    userID,
			CreatedAt: createdAt,
		},
	}
	for i, q := range questions {
		store.questions[jobID] = append(store.questions[jobID], models.JobQuestion{
			QuestionID: fmt.Sprintf("jq_%s_%d", jobID, i),
			JobID:      jobID,
			Question:   q,
			AnswerType: "text",
		})
	}
}

func TestFetchUserJobsFiltersAndOrders(t *testing.T) {
	store := newFakeStore()
	now := time.Now()
	store.users["u1"] = models.User{UserID: "u1", Username: "poster"}
	seedJob(store, "job_a", "u1", "Older", now.Add(-2*time.Hour))
	seedJob(store, "job_b", "u1", "Newer", now.Add(-1*time.Hour))
	seedJob(store, "job_c", "u2", "NotMine", now)

	svc := NewService(store)
	views, err := svc.FetchUserJobsWithQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(views))
	}
	if views[0].BasicInfo.Title != "Newer" || views[1].BasicInfo.Title != "Older" {
		t.Fatalf("jobs not ordered newest first: %q then %q", views[0].BasicInfo.Title, views[1].BasicInfo.Title)
	}
	for _, v := range views {
		if v.BasicInfo.UserID != "u1" {
			t.Fatalf("job %s does not belong to u1", v.JobID)
		}
	}
}

func TestFetchUserJobsAttachesQuestions(t *testing.T) {
	store := newFakeStore()
	store.users["u1"] = models.User{UserID: "u1", Username: "poster"}
	seedJob(store, "job_a", "u1", "WithQuestions", time.Now(), "Why you?", "When can you start?")
	seedJob(store, "job_b", "u1", "NoQuestions", time.Now().Add(-time.Minute))

	svc := NewService(store)
	views, err := svc.FetchUserJobsWithQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byTitle := map[string]models.JobView{}
	for _, v := range views {
		byTitle[v.BasicInfo.Title] = v
	}

	qs := byTitle["WithQuestions"].Questions
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Question != "Why you?" {
		t.Fatalf("unexpected question content %q", qs[0].Question)
	}
	if qs[0].AnswerType != "text" {
		t.Fatalf("answer type not carried through, got %q", qs[0].AnswerType)
	}
	if byTitle["NoQuestions"].Questions == nil || len(byTitle["NoQuestions"].Questions) != 0 {
		t.Fatalf("jobs without questions must carry an empty slice, got %#v", byTitle["NoQuestions"].Questions)
	}
}

func TestFetchUserJobsEnrichesApplicants(t *testing.T) {
	store := newFakeStore()
	store.users["u1"] = models.User{UserID: "u1", Username: "poster", Name: "Poster"}
	store.users["u2"] = models.User{UserID: "u2", Username: "applicant", Name: "Applicant", Email: "a@example.com"}
	store.images["u2"] = map[models.RoleTag]string{
		models.RoleProfile:         "/img/base.png",
		models.RoleJobApplyProfile: "/img/apply.png",
	}
	store.educations["u2"] = []models.Education{{EducationID: "edu1", UserID: "u2", School: "State U"}}
	seedJob(store, "job_a", "u1", "Baker", time.Now())
	store.applications["app1"] = models.Application{
		ApplicationID: "app1",
		BasicInfo:     models.ApplicationBasicInfo{JobID: "job_a", UserID: "u2", Status: models.ApplicationPending},
	}

	svc := NewService(store)
	views, err := svc.FetchUserJobsWithQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || len(views[0].Applications) != 1 {
		t.Fatalf("expected one job with one application, got %#v", views)
	}

	app := views[0].Applications[0]
	if app.Applicant.Username != "applicant" {
		t.Fatalf("applicant display not resolved: %#v", app.Applicant)
	}
	if app.Applicant.ProfileImage != "/img/apply.png" {
		t.Fatalf("expected jobApplyProfile image to win, got %q", app.Applicant.ProfileImage)
	}
	if len(app.Educations) != 1 || app.Educations[0].School != "State U" {
		t.Fatalf("education rows not attached: %#v", app.Educations)
	}
	if app.WorkExperiences == nil {
		t.Fatal("work experiences must be an empty slice, not nil")
	}
	if views[0].Creator.Username != "poster" {
		t.Fatalf("creator display not resolved: %#v", views[0].Creator)
	}
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	store := newFakeStore()
	store.users["u1"] = models.User{UserID: "u1", Username: "poster"}
	svc := NewService(store)

	job, err := svc.CreateJob(context.Background(), CreateJobInput{
		UserID:   "u1",
		JobTitle: "Baker",
		Questions: []CreateQuestionInput{
			{Question: "Can you bake bread?", AnswerType: "boolean"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.BasicInfo.Status != "open" {
		t.Fatalf("new jobs must start open, got %q", job.BasicInfo.Status)
	}

	views, err := svc.FetchUserJobsWithQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected exactly one job, got %d", len(views))
	}
	if views[0].BasicInfo.Title != "Baker" {
		t.Fatalf("unexpected title %q", views[0].BasicInfo.Title)
	}
	if len(views[0].Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(views[0].Questions))
	}
}

func TestCreateJobNormalizesSkillTags(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	job, err := svc.CreateJob(context.Background(), CreateJobInput{
		UserID:   "u1",
		JobTitle: "Baker",
		Skills:   []string{"Go, Docker", "go", " SQL "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []string{"go", "docker", "sql"}
	if len(job.Details.Skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, job.Details.Skills)
	}
	for i, s := range want {
		if job.Details.Skills[i] != s {
			t.Fatalf("expected %v, got %v", want, job.Details.Skills)
		}
	}
}

func TestAggregationAbortsOnReadFailure(t *testing.T) {
	store := newFakeStore()
	store.users["u1"] = models.User{UserID: "u1"}
	seedJob(store, "job_a", "u1", "Baker", time.Now())
	svc := NewService(store)

	// job listing succeeds, every child batch fails
	store.failReads = true

	if _, err := svc.FetchAllJobsWithQuestions(context.Background()); err == nil {
		t.Fatal("expected aggregation to abort on child read failure")
	}
}

func TestApplyCopiesJobTypeAndStartsPending(t *testing.T) {
	store := newFakeStore()
	store.jobs["job_a"] = models.Job{
		JobID:     "job_a",
		BasicInfo: models.JobBasicInfo{Title: "Baker", Type: models.JobTypeQuickTask, UserID: "u1", Status: "open"},
	}
	svc := NewService(store)

	saved, err := svc.Apply(context.Background(), models.Application{
		BasicInfo: models.ApplicationBasicInfo{JobID: "job_a", UserID: "u2"},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if saved.BasicInfo.Status != models.ApplicationPending {
		t.Fatalf("applications must start pending, got %q", saved.BasicInfo.Status)
	}
	if saved.BasicInfo.JobType != models.JobTypeQuickTask {
		t.Fatalf("jobType not copied from posting, got %q", saved.BasicInfo.JobType)
	}
}

func TestApplyToMissingJob(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Apply(context.Background(), models.Application{
		BasicInfo: models.ApplicationBasicInfo{JobID: "nope", UserID: "u2"},
	})
	if err == nil {
		t.Fatal("expected error applying to missing job")
	}
}

func TestUpdateApplicationStatusOverwritesAnyValue(t *testing.T) {
	store := newFakeStore()
	store.applications["app1"] = models.Application{
		ApplicationID: "app1",
		BasicInfo:     models.ApplicationBasicInfo{JobID: "job_a", UserID: "u2", Status: models.ApplicationAccepted},
	}
	svc := NewService(store)

	// accepted back to pending is allowed: last writer wins
	app, err := svc.UpdateApplicationStatus(context.Background(), "app1", models.ApplicationPending)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if app.BasicInfo.Status != models.ApplicationPending {
		t.Fatalf("status not overwritten, got %q", app.BasicInfo.Status)
	}
	if store.applications["app1"].BasicInfo.Status != models.ApplicationPending {
		t.Fatalf("store not updated, got %q", store.applications["app1"].BasicInfo.Status)
	}
}

func TestDeleteJobLeavesApplications(t *testing.T) {
	store := newFakeStore()
	seedJob(store, "job_a", "u1", "Baker", time.Now(), "Q1")
	store.applications["app1"] = models.Application{
		ApplicationID: "app1",
		BasicInfo:     models.ApplicationBasicInfo{JobID: "job_a", UserID: "u2"},
	}
	svc := NewService(store)

	if err := svc.DeleteJob(context.Background(), "job_a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.jobs["job_a"]; ok {
		t.Fatal("job not removed")
	}
	if _, ok := store.questions["job_a"]; ok {
		t.Fatal("questions must be removed with the job")
	}
	if _, ok := store.applications["app1"]; !ok {
		t.Fatal("applications must survive job deletion")
	}
}
