package models

import "time"

const (
	BusinessActive   = "active"
	BusinessPending  = "pending"
	BusinessInactive = "inactive"
)

type BusinessInfo struct {
	Name        string `json:"name" bson:"name"`
	Established string `json:"established" bson:"established"`
	Description string `json:"description" bson:"description"`
	Location    string `json:"location" bson:"location"`
	Contact     string `json:"contact" bson:"contact"`
}

type BusinessMetrics struct {
	TotalProducts int     `json:"totalProducts" bson:"totalProducts"`
	TotalSales    int     `json:"totalSales" bson:"totalSales"`
	AvgRating     float64 `json:"avgRating" bson:"avgRating"`
	ResponseRate  float64 `json:"responseRate" bson:"responseRate"`
}

type BusinessFeedback struct {
	Positive int `json:"positive" bson:"positive"`
	Neutral  int `json:"neutral" bson:"neutral"`
	Negative int `json:"negative" bson:"negative"`
}

type BusinessRating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type BusinessReview struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	UserID    string    `json:"userid" bson:"userid"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// BusinessProfile documents are looked up by userId filter, never by a stable
// document key. Nothing stops two documents existing for the same user.
type BusinessProfile struct {
	BusinessID string           `json:"businessid" bson:"businessid"`
	UserID     string           `json:"userid" bson:"userid"`
	Profile    BusinessInfo     `json:"profile" bson:"profile"`
	Metrics    BusinessMetrics  `json:"metrics" bson:"metrics"`
	Feedback   BusinessFeedback `json:"feedback" bson:"feedback"`
	Rating     BusinessRating   `json:"rating" bson:"rating"`
	Reviews    []BusinessReview `json:"reviews" bson:"reviews"`
	Categories []string         `json:"categories" bson:"categories"`
	Status     string           `json:"status" bson:"status"`
	CreatedAt  time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" bson:"updated_at"`
}

// BusinessAccount is the composite view assembled for display. Every field is
// populated with zero values when no profile exists; absence is signalled only
// by a separate existence check, never by this shape.
type BusinessAccount struct {
	BusinessID string           `json:"businessid"`
	UserID     string           `json:"userid"`
	Profile    BusinessInfo     `json:"profile"`
	Metrics    BusinessMetrics  `json:"metrics"`
	Feedback   BusinessFeedback `json:"feedback"`
	Rating     BusinessRating   `json:"rating"`
	Reviews    []BusinessReview `json:"reviews"`
	Categories []string         `json:"categories"`
	Status     string           `json:"status"`
}
