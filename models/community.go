package models

import "time"

type Community struct {
	CommunityID string    `json:"communityid" bson:"communityid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type CommunityMember struct {
	CommunityID string    `json:"communityid" bson:"communityid"`
	UserID      string    `json:"userid" bson:"userid"`
	Role        string    `json:"role,omitempty" bson:"role,omitempty"`
	JoinedAt    time.Time `json:"joinedAt" bson:"joinedAt"`
}

type CommunityPost struct {
	PostID      string    `json:"postid" bson:"postid"`
	CommunityID string    `json:"communityid" bson:"communityid"`
	UserID      string    `json:"userid" bson:"userid"`
	Title       string    `json:"title,omitempty" bson:"title,omitempty"`
	Content     string    `json:"content" bson:"content"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CommunityPostMedia rows reference their post by foreign key. Deleting a post
// does not cascade here; orphans are possible and tolerated.
type CommunityPostMedia struct {
	MediaID   string    `json:"mediaid" bson:"mediaid"`
	PostID    string    `json:"communityVariantDetailsId" bson:"communityVariantDetailsId"`
	URL       string    `json:"url" bson:"url"`
	MediaType string    `json:"mediaType" bson:"mediaType"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type CommunityMemberView struct {
	CommunityMember `bson:",inline"`
	Member          UserDisplay `json:"member" bson:"member"`
}

type CommunityPostView struct {
	CommunityPost `bson:",inline"`
	Author        UserDisplay          `json:"author" bson:"author"`
	Media         []CommunityPostMedia `json:"media" bson:"media"`
}
