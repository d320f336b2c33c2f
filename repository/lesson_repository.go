package repository

import (
	"context"
	"regexp"
	"time"

	"learnhub-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LessonRepository is the MongoDB adapter for LessonRepo.
type LessonRepository struct {
	collection *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{
		collection: db.Collection("lessons"),
	}
}

func (r *LessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) FindAll(ctx context.Context) ([]models.Lesson, error) {
	return r.find(ctx, bson.M{})
}

// Search matches the query as a case-insensitive substring of subject or location.
func (r *LessonRepository) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	return r.find(ctx, searchFilter(query))
}

// searchFilter builds the Mongo filter for a catalog search. The query is
// quoted so user input cannot inject regex syntax, and an empty query matches
// the whole catalog.
func searchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"subject": pattern},
		bson.M{"location": pattern},
	}}
}

func (r *LessonRepository) find(ctx context.Context, filter bson.M) ([]models.Lesson, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "subject", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lessons := []models.Lesson{}
	if err = cursor.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, lesson)
	return err
}

func (r *LessonRepository) CreateMany(ctx context.Context, lessons []models.Lesson) error {
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(lessons))
	for i := range lessons {
		lessons[i].CreatedAt = now
		lessons[i].UpdatedAt = now
		docs = append(docs, lessons[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *LessonRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DecrementSpaces runs a single conditional update so the availability check
// and the write cannot race: the filter only matches while spaces >= qty.
func (r *LessonRepository) DecrementSpaces(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	filter := bson.M{"_id": id, "spaces": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"spaces": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *LessonRepository) IncrementSpaces(ctx context.Context, id uuid.UUID, qty int) error {
	update := bson.M{
		"$inc": bson.M{"spaces": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
