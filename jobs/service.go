package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agora/models"
	"agora/profile"
	"agora/utils"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound   = errors.New("job not found")
	ErrValidation = errors.New("validation failed")
)

// Store is the data access surface the aggregation needs. Child lookups are
// batched: one call covers the whole id set.
type Store interface {
	AllJobs(ctx context.Context) ([]models.Job, error)
	JobsByUser(ctx context.Context, userID string) ([]models.Job, error)
	JobByID(ctx context.Context, jobID string) (*models.Job, error)
	InsertJob(ctx context.Context, job models.Job, questions []models.JobQuestion) error
	UpdateJobStatus(ctx context.Context, jobID, status string) error
	DeleteJob(ctx context.Context, jobID string) error

	QuestionsByJob(ctx context.Context, jobIDs []string) (map[string][]models.JobQuestion, error)
	ApplicationsByJob(ctx context.Context, jobIDs []string) (map[string][]models.Application, error)
	ApplicationByID(ctx context.Context, applicationID string) (*models.Application, error)
	InsertApplication(ctx context.Context, app models.Application) error
	UpdateApplicationStatus(ctx context.Context, applicationID, status string) error
	DeleteApplication(ctx context.Context, applicationID string) error

	UsersByID(ctx context.Context, userIDs []string) (map[string]models.User, error)
	ImageRolesByUser(ctx context.Context, userIDs []string) (map[string]map[models.RoleTag]string, error)
	EducationsByUser(ctx context.Context, userIDs []string) (map[string][]models.Education, error)
	ExperiencesByUser(ctx context.Context, userIDs []string) (map[string][]models.WorkExperience, error)
}

// Service assembles job view models. Plain struct, no state beyond the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// fanOutLimit caps concurrent child queries per aggregation.
const fanOutLimit = 4

// FetchAllJobsWithQuestions returns every posting ordered by creation time
// descending, enriched with its questions and the creator's display block.
// Any read failure aborts the whole aggregation; partial results are never
// returned.
func (s *Service) FetchAllJobsWithQuestions(ctx context.Context) ([]models.JobView, error) {
	jobs, err := s.store.AllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	if len(jobs) == 0 {
		return []models.JobView{}, nil
	}

	jobIDs := make([]string, 0, len(jobs))
	ownerIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.JobID)
		ownerIDs = append(ownerIDs, j.BasicInfo.UserID)
	}
	ownerIDs = dedupe(ownerIDs)

	var (
		questions map[string][]models.JobQuestion
		owners    map[string]models.User
		images    map[string]map[models.RoleTag]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(func() (err error) {
		questions, err = s.store.QuestionsByJob(gctx, jobIDs)
		return err
	})
	g.Go(func() (err error) {
		owners, err = s.store.UsersByID(gctx, ownerIDs)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.store.ImageRolesByUser(gctx, ownerIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate jobs: %w", err)
	}

	views := make([]models.JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, models.JobView{
			Job:       j,
			Questions: orEmptyQuestions(questions[j.JobID]),
			Creator:   displayFor(j.BasicInfo.UserID, owners, images, profile.CreatorPriority),
		})
	}
	return views, nil
}

// FetchUserJobsWithQuestions returns only the given user's postings, each with
// questions, applications, and per-applicant display, education and work
// experience rows.
func (s *Service) FetchUserJobsWithQuestions(ctx context.Context, userID string) ([]models.JobView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrValidation)
	}

	jobs, err := s.store.JobsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user jobs: %w", err)
	}
	if len(jobs) == 0 {
		return []models.JobView{}, nil
	}

	jobIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.JobID)
	}

	var (
		questions    map[string][]models.JobQuestion
		applications map[string][]models.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(func() (err error) {
		questions, err = s.store.QuestionsByJob(gctx, jobIDs)
		return err
	})
	g.Go(func() (err error) {
		applications, err = s.store.ApplicationsByJob(gctx, jobIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate user jobs: %w", err)
	}

	// the owner rides along in the same batch so the creator block resolves too
	applicantIDs := []string{userID}
	for _, apps := range applications {
		for _, a := range apps {
			applicantIDs = append(applicantIDs, a.BasicInfo.UserID)
		}
	}
	applicantIDs = dedupe(applicantIDs)

	var (
		applicants  map[string]models.User
		images      map[string]map[models.RoleTag]string
		educations  map[string][]models.Education
		experiences map[string][]models.WorkExperience
	)

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(func() (err error) {
		applicants, err = s.store.UsersByID(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.store.ImageRolesByUser(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		educations, err = s.store.EducationsByUser(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		experiences, err = s.store.ExperiencesByUser(gctx, applicantIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate applicants: %w", err)
	}

	views := make([]models.JobView, 0, len(jobs))
	for _, j := range jobs {
		appViews := make([]models.ApplicationView, 0, len(applications[j.JobID]))
		for _, a := range applications[j.JobID] {
			appViews = append(appViews, models.ApplicationView{
				Application:     a,
				Applicant:       displayFor(a.BasicInfo.UserID, applicants, images, profile.ApplicantPriority),
				Educations:      orEmptyEducations(educations[a.BasicInfo.UserID]),
				WorkExperiences: orEmptyExperiences(experiences[a.BasicInfo.UserID]),
			})
		}
		views = append(views, models.JobView{
			Job:          j,
			Questions:    orEmptyQuestions(questions[j.JobID]),
			Creator:      displayFor(userID, applicants, images, profile.CreatorPriority),
			Applications: appViews,
		})
	}
	return views, nil
}

// ApplicationsForJob returns the enriched applications of one posting.
func (s *Service) ApplicationsForJob(ctx context.Context, jobID string) ([]models.ApplicationView, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: jobId required", ErrValidation)
	}
	if _, err := s.store.JobByID(ctx, jobID); err != nil {
		return nil, err
	}

	applications, err := s.store.ApplicationsByJob(ctx, []string{jobID})
	if err != nil {
		return nil, fmt.Errorf("fetch applications: %w", err)
	}
	apps := applications[jobID]

	applicantIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		applicantIDs = append(applicantIDs, a.BasicInfo.UserID)
	}
	applicantIDs = dedupe(applicantIDs)

	var (
		applicants  map[string]models.User
		images      map[string]map[models.RoleTag]string
		educations  map[string][]models.Education
		experiences map[string][]models.WorkExperience
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	g.Go(func() (err error) {
		applicants, err = s.store.UsersByID(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.store.ImageRolesByUser(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		educations, err = s.store.EducationsByUser(gctx, applicantIDs)
		return err
	})
	g.Go(func() (err error) {
		experiences, err = s.store.ExperiencesByUser(gctx, applicantIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate applications: %w", err)
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, models.ApplicationView{
			Application:     a,
			Applicant:       displayFor(a.BasicInfo.UserID, applicants, images, profile.ApplicantPriority),
			Educations:      orEmptyEducations(educations[a.BasicInfo.UserID]),
			WorkExperiences: orEmptyExperiences(experiences[a.BasicInfo.UserID]),
		})
	}
	return views, nil
}

// CreateJobInput is the accepted creation payload.
type CreateJobInput struct {
	UserID           string                `json:"userId"`
	JobTitle         string                `json:"jobTitle"`
	Description      string                `json:"description"`
	JobCategory      string                `json:"jobCategory"`
	Location         string                `json:"location"`
	PriceRange       models.PriceRange     `json:"priceRange"`
	Skills           []string              `json:"skills"`
	Requirements     []string              `json:"requirements"`
	Qualifications   []string              `json:"qualifications"`
	CategorySpecific map[string]any        `json:"category_specific"`
	Questions        []CreateQuestionInput `json:"questions"`
}

type CreateQuestionInput struct {
	Question   string   `json:"question"`
	AnswerType string   `json:"answerType"`
	Options    []string `json:"options"`
}

func (s *Service) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if in.UserID == "" || in.JobTitle == "" {
		return nil, fmt.Errorf("%w: userId and jobTitle required", ErrValidation)
	}

	now := time.Now()
	job := models.Job{
		JobID: utils.NewID("job"),
		BasicInfo: models.JobBasicInfo{
			Title:       in.JobTitle,
			Description: in.Description,
			Type:        in.JobCategory,
			Status:      "open",
			UserID:      in.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
			PriceRange:  in.PriceRange,
			Location:    in.Location,
		},
		Details: models.JobDetails{
			// form clients submit skills as comma strings, API clients as
			// lists; normalize both into trimmed, deduplicated tags
			Skills:         utils.SplitTags(strings.Join(in.Skills, ",")),
			Requirements:   in.Requirements,
			Qualifications: in.Qualifications,
		},
		CategorySpecific: in.CategorySpecific,
	}

	questions := make([]models.JobQuestion, 0, len(in.Questions))
	for _, q := range in.Questions {
		questions = append(questions, models.JobQuestion{
			QuestionID: utils.NewID("jq"),
			JobID:      job.JobID,
			Question:   q.Question,
			AnswerType: q.AnswerType,
			Options:    q.Options,
		})
	}

	if err := s.store.InsertJob(ctx, job, questions); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return &job, nil
}

func (s *Service) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	if jobID == "" || status == "" {
		return fmt.Errorf("%w: jobId and status required", ErrValidation)
	}
	return s.store.UpdateJobStatus(ctx, jobID, status)
}

// DeleteJob removes the posting and its question rows. Applications are left
// behind; nothing cascades onto them.
func (s *Service) DeleteJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return fmt.Errorf("%w: jobId required", ErrValidation)
	}
	return s.store.DeleteJob(ctx, jobID)
}

func (s *Service) Apply(ctx context.Context, app models.Application) (models.Application, error) {
	if app.BasicInfo.JobID == "" || app.BasicInfo.UserID == "" {
		return app, fmt.Errorf("%w: jobId and userId required", ErrValidation)
	}

	job, err := s.store.JobByID(ctx, app.BasicInfo.JobID)
	if err != nil {
		return app, err
	}

	now := time.Now()
	app.ApplicationID = utils.NewID("app")
	app.BasicInfo.Status = models.ApplicationPending
	app.BasicInfo.JobType = job.BasicInfo.Type
	app.BasicInfo.CreatedAt = now
	app.BasicInfo.UpdatedAt = now

	if err := s.store.InsertApplication(ctx, app); err != nil {
		return app, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// UpdateApplicationStatus writes the status as given. No transition check:
// any value overwrites any prior value, last writer wins.
func (s *Service) UpdateApplicationStatus(ctx context.Context, applicationID, status string) (*models.Application, error) {
	if applicationID == "" || status == "" {
		return nil, fmt.Errorf("%w: applicationId and status required", ErrValidation)
	}

	app, err := s.store.ApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	app.BasicInfo.Status = status
	return app, nil
}

func (s *Service) DeleteApplication(ctx context.Context, applicationID string) error {
	if applicationID == "" {
		return fmt.Errorf("%w: applicationId required", ErrValidation)
	}
	return s.store.DeleteApplication(ctx, applicationID)
}

// --- assembly helpers ---

func displayFor(userID string, users map[string]models.User, images map[string]map[models.RoleTag]string, priority []models.RoleTag) models.UserDisplay {
	u := users[userID]
	return models.UserDisplay{
		UserID:       userID,
		Username:     u.Username,
		Name:         u.Name,
		ProfileImage: profile.ResolveProfileImage(images[userID], priority),
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func orEmptyQuestions(qs []models.JobQuestion) []models.JobQuestion {
	if qs == nil {
		return []models.JobQuestion{}
	}
	return qs
}

func orEmptyEducations(es []models.Education) []models.Education {
	if es == nil {
		return []models.Education{}
	}
	return es
}

func orEmptyExperiences(ws []models.WorkExperience) []models.WorkExperience {
	if ws == nil {
		return []models.WorkExperience{}
	}
	return ws
}
