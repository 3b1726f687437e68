package jobs

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"agora/emailer"
	"agora/models"
	"agora/mq"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler owns the job HTTP surface. Constructed once in main and handed to
// route registration.
type Handler struct {
	svc  *Service
	mail emailer.Sender
}

func NewHandler(svc *Service, mail emailer.Sender) *Handler {
	return &Handler{svc: svc, mail: mail}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("jobs: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
	}
}

// GetJobs returns every posting with questions and creator display.
func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	views, err := h.svc.FetchAllJobsWithQuestions(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "jobs": views})
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in CreateJobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.UserID == "" {
		in.UserID = utils.UserIDFromContext(r.Context())
	}

	job, err := h.svc.CreateJob(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	mq.Emit(r.Context(), "job-created", models.Event{
		EntityType: "job", Method: "POST", EntityID: job.JobID, ActorID: job.BasicInfo.UserID,
	})
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "job": job})
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.svc.UpdateJobStatus(r.Context(), ps.ByName("jobid"), body.Status); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Job updated"})
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.DeleteJob(r.Context(), ps.ByName("jobid")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Job deleted"})
}

// Apply files an application against a posting.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Details models.ApplicationDetails `json:"details"`
		Answers map[string]string         `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	app := models.Application{
		BasicInfo: models.ApplicationBasicInfo{
			JobID:  ps.ByName("jobid"),
			UserID: utils.UserIDFromContext(r.Context()),
		},
		Details: body.Details,
		Answers: body.Answers,
	}

	saved, err := h.svc.Apply(r.Context(), app)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	// best-effort heads-up for the poster
	if job, err := h.svc.store.JobByID(r.Context(), saved.BasicInfo.JobID); err == nil {
		h.notifyPoster(r, job, saved)
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "application": saved})
}

func (h *Handler) notifyPoster(r *http.Request, job *models.Job, app models.Application) {
	users, err := h.svc.store.UsersByID(r.Context(), []string{job.BasicInfo.UserID, app.BasicInfo.UserID})
	if err != nil {
		log.Printf("jobs: notify poster lookup: %v", err)
		return
	}
	poster := users[job.BasicInfo.UserID]
	applicant := users[app.BasicInfo.UserID]
	if poster.Email == "" {
		return
	}

	mail := emailer.ApplicationMail{
		ApplicantName: displayName(applicant),
		JobTitle:      job.BasicInfo.Title,
		PosterName:    displayName(poster),
		AppURL:        os.Getenv("APP_URL"),
	}
	if err := h.mail.SendApplicationReceived(r.Context(), poster.Email, mail); err != nil {
		log.Printf("jobs: notification email: %v", err)
	}

	mq.Emit(r.Context(), "application-created", models.Event{
		EntityType: "application", Method: "POST", EntityID: app.ApplicationID,
		ActorID: app.BasicInfo.UserID, TargetID: job.BasicInfo.UserID,
	})
}

// MyJobsApplications serves GET /api/jobs/myjobs/applications.
// Exactly one of userId and jobId must be supplied: userId returns that user's
// postings fully enriched, jobId returns the applications of one posting.
func (h *Handler) MyJobsApplications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	jobID := strings.TrimSpace(r.URL.Query().Get("jobId"))

	switch {
	case userID != "" && jobID != "":
		utils.RespondWithError(w, http.StatusBadRequest, "Provide either userId or jobId, not both")
	case userID != "":
		views, err := h.svc.FetchUserJobsWithQuestions(r.Context(), userID)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "jobs": views})
	case jobID != "":
		views, err := h.svc.ApplicationsForJob(r.Context(), jobID)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "applications": views})
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "userId or jobId query parameter required")
	}
}

// UpdateApplicationStatus serves PATCH /api/jobs/myjobs/applications. Writing
// "accepted" dispatches the acceptance email, "rejected" the rejection email,
// anything else sends nothing. Email failure never fails the update.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		ApplicationID string `json:"applicationId"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	app, err := h.svc.UpdateApplicationStatus(r.Context(), body.ApplicationID, body.Status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	switch body.Status {
	case models.ApplicationAccepted, models.ApplicationRejected:
		h.sendDecisionEmail(r, app, body.Status)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Application updated"})
}

func (h *Handler) sendDecisionEmail(r *http.Request, app *models.Application, status string) {
	ctx := r.Context()

	job, err := h.svc.store.JobByID(ctx, app.BasicInfo.JobID)
	if err != nil {
		log.Printf("jobs: decision email job lookup: %v", err)
		return
	}
	users, err := h.svc.store.UsersByID(ctx, []string{app.BasicInfo.UserID, job.BasicInfo.UserID})
	if err != nil {
		log.Printf("jobs: decision email user lookup: %v", err)
		return
	}
	applicant := users[app.BasicInfo.UserID]
	if applicant.Email == "" {
		log.Printf("jobs: no email on file for applicant %s", app.BasicInfo.UserID)
		return
	}

	mail := emailer.ApplicationMail{
		ApplicantName: displayName(applicant),
		JobTitle:      job.BasicInfo.Title,
		PosterName:    displayName(users[job.BasicInfo.UserID]),
		AppURL:        os.Getenv("APP_URL"),
	}

	if status == models.ApplicationAccepted {
		err = h.mail.SendApplicationAccepted(ctx, applicant.Email, mail)
	} else {
		err = h.mail.SendApplicationRejected(ctx, applicant.Email, mail)
	}
	if err != nil {
		log.Printf("jobs: decision email send: %v", err)
	}

	mq.Emit(ctx, "application-"+status, models.Event{
		EntityType: "application", Method: "PATCH", EntityID: app.ApplicationID,
		ActorID: job.BasicInfo.UserID, TargetID: app.BasicInfo.UserID, Extra: status,
	})
}

// DeleteApplication serves DELETE /api/jobs/myjobs/applications?applicationId=…
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	applicationID := strings.TrimSpace(r.URL.Query().Get("applicationId"))
	if applicationID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "applicationId query parameter required")
		return
	}

	if err := h.svc.DeleteApplication(r.Context(), applicationID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Application deleted"})
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
