package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection              *mongo.Collection
	ProfilesCollection          *mongo.Collection
	ProfileImagesCollection     *mongo.Collection
	ProfileImageSetAsCollection *mongo.Collection

	JobsCollection            *mongo.Collection
	JobQuestionsCollection    *mongo.Collection
	ApplicationsCollection    *mongo.Collection
	EducationsCollection      *mongo.Collection
	WorkExperiencesCollection *mongo.Collection

	BusinessProfilesCollection *mongo.Collection

	ProductsCollection      *mongo.Collection
	ColorVariantsCollection *mongo.Collection
	SizeVariantsCollection  *mongo.Collection
	VariantsCollection      *mongo.Collection
	SubImagesCollection     *mongo.Collection
	OwnershipCollection     *mongo.Collection

	CommunitiesCollection        *mongo.Collection
	CommunityMembersCollection   *mongo.Collection
	CommunityPostsCollection     *mongo.Collection
	CommunityPostMediaCollection *mongo.Collection

	AdsCollection      *mongo.Collection
	ChatsCollection    *mongo.Collection
	MessagesCollection *mongo.Collection

	Client *mongo.Client
)

// Init connects to MongoDB and binds every collection handle. Call once at
// startup before any handler runs.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	dbase := client.Database("agoradb")

	UserCollection = dbase.Collection("users")
	ProfilesCollection = dbase.Collection("profiles")
	ProfileImagesCollection = dbase.Collection("profileImages")
	ProfileImageSetAsCollection = dbase.Collection("profileImageSetAs")

	JobsCollection = dbase.Collection("jobs")
	JobQuestionsCollection = dbase.Collection("jobQuestions")
	ApplicationsCollection = dbase.Collection("applications")
	EducationsCollection = dbase.Collection("educations")
	WorkExperiencesCollection = dbase.Collection("workExperiences")

	BusinessProfilesCollection = dbase.Collection("businessProfiles")

	ProductsCollection = dbase.Collection("products")
	ColorVariantsCollection = dbase.Collection("colorVariants")
	SizeVariantsCollection = dbase.Collection("sizeVariants")
	VariantsCollection = dbase.Collection("variants")
	SubImagesCollection = dbase.Collection("subImages")
	OwnershipCollection = dbase.Collection("ownership")

	CommunitiesCollection = dbase.Collection("communities")
	CommunityMembersCollection = dbase.Collection("communityMembers")
	CommunityPostsCollection = dbase.Collection("communityPosts")
	CommunityPostMediaCollection = dbase.Collection("communityPostMedia")

	AdsCollection = dbase.Collection("ads")
	ChatsCollection = dbase.Collection("chats")
	MessagesCollection = dbase.Collection("messages")

	return nil
}

// Close disconnects the client during shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
