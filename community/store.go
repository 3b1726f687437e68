package community

import (
	"context"
	"errors"
	"fmt"

	"agora/db"
	"agora/models"
	"agora/profile"
	"agora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

func (m *MongoStore) Community(ctx context.Context, communityID string) (*models.Community, error) {
	var c models.Community
	err := db.CommunitiesCollection.FindOne(ctx, bson.M{"communityid": communityID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, communityID)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MongoStore) InsertCommunity(ctx context.Context, c models.Community) error {
	_, err := db.CommunitiesCollection.InsertOne(ctx, c)
	return err
}

func (m *MongoStore) InsertMember(ctx context.Context, member models.CommunityMember) error {
	_, err := db.CommunityMembersCollection.InsertOne(ctx, member)
	return err
}

func (m *MongoStore) RemoveMember(ctx context.Context, communityID, userID string) error {
	_, err := db.CommunityMembersCollection.DeleteOne(ctx,
		bson.M{"communityid": communityID, "userid": userID})
	return err
}

func (m *MongoStore) InsertPost(ctx context.Context, p models.CommunityPost, media []models.CommunityPostMedia) error {
	if _, err := db.CommunityPostsCollection.InsertOne(ctx, p); err != nil {
		return err
	}
	if len(media) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(media))
	for _, row := range media {
		docs = append(docs, row)
	}
	_, err := db.CommunityPostMediaCollection.InsertMany(ctx, docs)
	return err
}

func (m *MongoStore) MembersByCommunity(ctx context.Context, communityID string) ([]models.CommunityMember, error) {
	return utils.FindAndDecode[models.CommunityMember](ctx, db.CommunityMembersCollection,
		bson.M{"communityid": communityID})
}

func (m *MongoStore) PostsByCommunity(ctx context.Context, communityID string) ([]models.CommunityPost, error) {
	return utils.FindAndDecode[models.CommunityPost](ctx, db.CommunityPostsCollection,
		bson.M{"communityid": communityID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (m *MongoStore) MediaByPosts(ctx context.Context, postIDs []string) (map[string][]models.CommunityPostMedia, error) {
	out := make(map[string][]models.CommunityPostMedia, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	rows, err := utils.FindAndDecode[models.CommunityPostMedia](ctx, db.CommunityPostMediaCollection,
		bson.M{"communityVariantDetailsId": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], row)
	}
	return out, nil
}

func (m *MongoStore) UsersByID(ctx context.Context, userIDs []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection,
		bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UserID] = u
	}
	return out, nil
}

func (m *MongoStore) ImageRolesByUser(ctx context.Context, userIDs []string) (map[string]map[models.RoleTag]string, error) {
	return profile.ImageRolesByUser(ctx, userIDs)
}
