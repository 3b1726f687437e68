package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agora/db"
	"agora/models"
	"agora/profile"
	"agora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs the Store interface with the shared collection handles.
type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

var jobSortNewest = options.Find().SetSort(bson.M{"basic_info.createdAt": -1})

func (m *MongoStore) AllJobs(ctx context.Context) ([]models.Job, error) {
	return utils.FindAndDecode[models.Job](ctx, db.JobsCollection, bson.M{}, jobSortNewest)
}

func (m *MongoStore) JobsByUser(ctx context.Context, userID string) ([]models.Job, error) {
	return utils.FindAndDecode[models.Job](ctx, db.JobsCollection,
		bson.M{"basic_info.userId": userID}, jobSortNewest)
}

func (m *MongoStore) JobByID(ctx context.Context, jobID string) (*models.Job, error) {
	var job models.Job
	err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (m *MongoStore) InsertJob(ctx context.Context, job models.Job, questions []models.JobQuestion) error {
	if _, err := db.JobsCollection.InsertOne(ctx, job); err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, q)
	}
	_, err := db.JobQuestionsCollection.InsertMany(ctx, docs)
	return err
}

func (m *MongoStore) UpdateJobStatus(ctx context.Context, jobID, status string) error {
	res, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": jobID},
		bson.M{"$set": bson.M{"basic_info.status": status, "basic_info.updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	return nil
}

func (m *MongoStore) DeleteJob(ctx context.Context, jobID string) error {
	res, err := db.JobsCollection.DeleteOne(ctx, bson.M{"jobid": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	_, err = db.JobQuestionsCollection.DeleteMany(ctx, bson.M{"jobid": jobID})
	return err
}

func (m *MongoStore) QuestionsByJob(ctx context.Context, jobIDs []string) (map[string][]models.JobQuestion, error) {
	out := make(map[string][]models.JobQuestion, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	questions, err := utils.FindAndDecode[models.JobQuestion](ctx, db.JobQuestionsCollection,
		bson.M{"jobid": bson.M{"$in": jobIDs}})
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		out[q.JobID] = append(out[q.JobID], q)
	}
	return out, nil
}

func (m *MongoStore) ApplicationsByJob(ctx context.Context, jobIDs []string) (map[string][]models.Application, error) {
	out := make(map[string][]models.Application, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	apps, err := utils.FindAndDecode[models.Application](ctx, db.ApplicationsCollection,
		bson.M{"basic_info.jobId": bson.M{"$in": jobIDs}},
		options.Find().SetSort(bson.M{"basic_info.createdAt": -1}))
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		out[a.BasicInfo.JobID] = append(out[a.BasicInfo.JobID], a)
	}
	return out, nil
}

func (m *MongoStore) ApplicationByID(ctx context.Context, applicationID string) (*models.Application, error) {
	var app models.Application
	err := db.ApplicationsCollection.FindOne(ctx, bson.M{"applicationid": applicationID}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (m *MongoStore) InsertApplication(ctx context.Context, app models.Application) error {
	_, err := db.ApplicationsCollection.InsertOne(ctx, app)
	return err
}

func (m *MongoStore) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	res, err := db.ApplicationsCollection.UpdateOne(ctx,
		bson.M{"applicationid": applicationID},
		bson.M{"$set": bson.M{"basic_info.status": status, "basic_info.updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return nil
}

func (m *MongoStore) DeleteApplication(ctx context.Context, applicationID string) error {
	res, err := db.ApplicationsCollection.DeleteOne(ctx, bson.M{"applicationid": applicationID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return nil
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

func (m *MongoStore) EducationsByUser(ctx context.Context, userIDs []string) (map[string][]models.Education, error) {
	out := make(map[string][]models.Education, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := utils.FindAndDecode[models.Education](ctx, db.EducationsCollection,
		bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	for _, e := range rows {
		out[e.UserID] = append(out[e.UserID], e)
	}
	return out, nil
}

func (m *MongoStore) ExperiencesByUser(ctx context.Context, userIDs []string) (map[string][]models.WorkExperience, error) {
	out := make(map[string][]models.WorkExperience, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := utils.FindAndDecode[models.WorkExperience](ctx, db.WorkExperiencesCollection,
		bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	for _, w := range rows {
		out[w.UserID] = append(out[w.UserID], w)
	}
	return out, nil
}
