package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agora/db"
	"agora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

// ProfileByUser returns the first profile matching the userId filter. When
// duplicates exist (see CreateBusinessAccount) whichever the store surfaces
// first wins.
func (m *MongoStore) ProfileByUser(ctx context.Context, userID string) (*models.BusinessProfile, error) {
	var p models.BusinessProfile
	err := db.BusinessProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MongoStore) Insert(ctx context.Context, p models.BusinessProfile) error {
	_, err := db.BusinessProfilesCollection.InsertOne(ctx, p)
	return err
}

func (m *MongoStore) UpdateByUser(ctx context.Context, userID string, info models.BusinessInfo, categories []string, status string) error {
	set := bson.M{
		"profile":    info,
		"updated_at": time.Now(),
	}
	if categories != nil {
		set["categories"] = categories
	}
	if status != "" {
		set["status"] = status
	}

	res, err := db.BusinessProfilesCollection.UpdateOne(ctx,
		bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}

func (m *MongoStore) DeleteByUser(ctx context.Context, userID string) error {
	res, err := db.BusinessProfilesCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return nil
}

func (m *MongoStore) CountProductsByOwner(ctx context.Context, userID string) (int, error) {
	n, err := db.OwnershipCollection.CountDocuments(ctx, bson.M{"userid": userID})
	return int(n), err
}
