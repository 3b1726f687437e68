package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          []string  `json:"role" bson:"role"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	Online        bool      `json:"online"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	IsVerified    bool      `json:"is_verified" bson:"is_verified"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"refreshexp" bson:"refreshexp"`
}

// Profile carries the extended attributes kept apart from the identity row.
type Profile struct {
	UserID      string            `json:"userid" bson:"userid"`
	Bio         string            `json:"bio,omitempty" bson:"bio,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address     string            `json:"address,omitempty" bson:"address,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty" bson:"social_links,omitempty"`
	Skills      []string          `json:"skills,omitempty" bson:"skills,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// RoleTag names the context a stored image is assigned to.
type RoleTag string

const (
	RoleProfile         RoleTag = "profile"
	RoleCoverProfile    RoleTag = "coverProfile"
	RolePostProfile     RoleTag = "postProfile"
	RoleJobProfile      RoleTag = "jobProfile"
	RoleJobApplyProfile RoleTag = "jobApplyProfile"
)

type ProfileImage struct {
	ImageID   string    `json:"imageid" bson:"imageid"`
	UserID    string    `json:"userid" bson:"userid"`
	URL       string    `json:"url" bson:"url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ImageAssignment maps one role tag to one of a user's stored images.
type ImageAssignment struct {
	UserID  string    `json:"userid" bson:"userid"`
	Role    RoleTag   `json:"role" bson:"role"`
	ImageID string    `json:"imageid" bson:"imageid"`
	SetAt   time.Time `json:"set_at" bson:"set_at"`
}

// UserDisplay is the denormalized author/member block embedded in view models.
type UserDisplay struct {
	UserID       string `json:"userid" bson:"userid"`
	Username     string `json:"username" bson:"username"`
	Name         string `json:"name" bson:"name"`
	ProfileImage string `json:"profile_image" bson:"profile_image"`
}

type Education struct {
	EducationID string `json:"educationid" bson:"educationid"`
	UserID      string `json:"userid" bson:"userid"`
	School      string `json:"school" bson:"school"`
	Degree      string `json:"degree,omitempty" bson:"degree,omitempty"`
	Field       string `json:"field,omitempty" bson:"field,omitempty"`
	FromYear    int    `json:"from_year,omitempty" bson:"from_year,omitempty"`
	ToYear      int    `json:"to_year,omitempty" bson:"to_year,omitempty"`
}

type WorkExperience struct {
	ExperienceID string `json:"experienceid" bson:"experienceid"`
	UserID       string `json:"userid" bson:"userid"`
	Company      string `json:"company" bson:"company"`
	Title        string `json:"title" bson:"title"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	FromYear     int    `json:"from_year,omitempty" bson:"from_year,omitempty"`
	ToYear       int    `json:"to_year,omitempty" bson:"to_year,omitempty"`
}
