package models

import "time"

type Chat struct {
	ChatID       string    `json:"chatid" bson:"chatid"`
	Participants []string  `json:"participants" bson:"participants"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	LastMessage  string    `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	LastActivity time.Time `json:"lastActivity,omitempty" bson:"lastActivity,omitempty"`
}

type Message struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	ChatID    string    `json:"chatid" bson:"chatid"`
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	SentAt    time.Time `json:"sentAt" bson:"sentAt"`
}
