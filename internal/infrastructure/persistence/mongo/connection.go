package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultDatabase = "exercise_tracker"

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and pings the primary. The database name comes from the URI path,
// falling back to exercise_tracker.
func Connect(ctx context.Context, uri string) (*DB, error) {
	uri = strings.TrimSpace(uri)
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, err
	}
	name := cs.Database
	if name == "" {
		name = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

func (d *DB) Users() *UserRepository {
	return NewUserRepository(d.db)
}

func (d *DB) Exercises() *ExerciseRepository {
	return NewExerciseRepository(d.db)
}
