package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"idea-lab/config"
)

const (
	CollectionIdeaPlans = "idea_plans"
	CollectionAILogs    = "ai_logs"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// InitMongo initializes the global Mongo client and database using config values.
func InitMongo(ctx context.Context, cfg config.MongoConfig) error {
	var initErr error
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(cfg.DBName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		config.Logger.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// idea_plans: 내 플랜 목록 조회용 (owner_id, created_at desc)
	if _, err := d.Collection(CollectionIdeaPlans).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_owner_created_at"),
	}); err != nil {
		return err
	}

	// ai_logs: requested_at desc
	if _, err := d.Collection(CollectionAILogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "requested_at", Value: -1}},
		Options: options.Index().SetName("idx_requested_at_desc"),
	}); err != nil {
		return err
	}
	return nil
}
