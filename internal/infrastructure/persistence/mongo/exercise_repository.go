package mongo

import (
	"context"

	"exercise-tracker/internal/domain/exercise"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exercisesCollection = "exercises"

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        primitive.DateTime `bson:"date"`
}

func (d exerciseDocument) toDomain() exercise.Exercise {
	return exercise.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.Time().UTC(),
	}
}

type ExerciseRepository struct {
	coll *mongo.Collection
}

func NewExerciseRepository(db *mongo.Database) *ExerciseRepository {
	return &ExerciseRepository{coll: db.Collection(exercisesCollection)}
}

func (r *ExerciseRepository) Create(ctx context.Context, e exercise.Exercise) (exercise.Exercise, error) {
	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        primitive.NewDateTimeFromTime(e.Date),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return exercise.Exercise{}, err
	}
	return doc.toDomain(), nil
}

func (r *ExerciseRepository) Find(ctx context.Context, f exercise.LogFilter) ([]exercise.Exercise, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(f.EffectiveLimit()))

	cur, err := r.coll.Find(ctx, logQuery(f), opts)
	if err != nil {
		return nil, err
	}

	var docs []exerciseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]exercise.Exercise, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func logQuery(f exercise.LogFilter) bson.M {
	q := bson.M{"user_id": f.UserID}
	if !f.HasRange() {
		return q
	}

	date := bson.M{}
	if f.From != nil {
		date["$gte"] = primitive.NewDateTimeFromTime(*f.From)
	}
	if f.To != nil {
		date["$lte"] = primitive.NewDateTimeFromTime(*f.To)
	}
	q["date"] = date
	return q
}
