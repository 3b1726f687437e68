package models

import "time"

// Job categories observed in postings.
const (
	JobTypeProfessional = "professional"
	JobTypeFreelancer   = "freelancer"
	JobTypeQuickTask    = "quickTask"
)

// Application statuses. A flat enum: any value may overwrite any prior value,
// there is no transition check anywhere in the write path.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type PriceRange struct {
	From float64 `json:"from" bson:"from"`
	To   float64 `json:"to" bson:"to"`
}

type JobBasicInfo struct {
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Type        string     `json:"type" bson:"type"`
	Status      string     `json:"status" bson:"status"`
	UserID      string     `json:"userId" bson:"userId"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
	PriceRange  PriceRange `json:"priceRange" bson:"priceRange"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
}

type JobDetails struct {
	Skills         []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Requirements   []string `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Qualifications []string `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
}

type Job struct {
	JobID            string         `json:"jobid" bson:"jobid"`
	BasicInfo        JobBasicInfo   `json:"basic_info" bson:"basic_info"`
	Details          JobDetails     `json:"details" bson:"details"`
	CategorySpecific map[string]any `json:"category_specific,omitempty" bson:"category_specific,omitempty"`
}

// JobQuestion lives in the jobQuestions collection keyed by jobid, the
// document-store rendering of a nested subcollection.
type JobQuestion struct {
	QuestionID string   `json:"questionid" bson:"questionid"`
	JobID      string   `json:"jobid" bson:"jobid"`
	Question   string   `json:"question" bson:"question"`
	AnswerType string   `json:"type" bson:"type"`
	Options    []string `json:"options,omitempty" bson:"options,omitempty"`
}

type ApplicationBasicInfo struct {
	JobID     string    `json:"jobId" bson:"jobId"`
	UserID    string    `json:"userId" bson:"userId"`
	Status    string    `json:"status" bson:"status"`
	JobType   string    `json:"jobType,omitempty" bson:"jobType,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type ApplicationDetails struct {
	CoverLetter   string `json:"coverLetter,omitempty" bson:"coverLetter,omitempty"`
	ResumeURL     string `json:"resumeUrl,omitempty" bson:"resumeUrl,omitempty"`
	PortfolioLink string `json:"portfolioLink,omitempty" bson:"portfolioLink,omitempty"`
}

type Application struct {
	ApplicationID    string               `json:"applicationid" bson:"applicationid"`
	BasicInfo        ApplicationBasicInfo `json:"basic_info" bson:"basic_info"`
	Details          ApplicationDetails   `json:"details" bson:"details"`
	Answers          map[string]string    `json:"answers,omitempty" bson:"answers,omitempty"`
	CategorySpecific map[string]any       `json:"category_specific,omitempty" bson:"category_specific,omitempty"`
}

// JobView is the assembled response shape: the posting plus its questions and
// the creator's display block, and, in the owner path, the applications.
type JobView struct {
	Job          `bson:",inline"`
	Questions    []JobQuestion     `json:"questions" bson:"questions"`
	Creator      UserDisplay       `json:"creator" bson:"creator"`
	Applications []ApplicationView `json:"applications,omitempty" bson:"applications,omitempty"`
}

type ApplicationView struct {
	Application     `bson:",inline"`
	Applicant       UserDisplay      `json:"applicant" bson:"applicant"`
	Educations      []Education      `json:"educations" bson:"educations"`
	WorkExperiences []WorkExperience `json:"work_experiences" bson:"work_experiences"`
}
