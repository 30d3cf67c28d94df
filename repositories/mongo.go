package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"idea-lab/db"
	"idea-lab/models"
)

type MongoStore struct {
	client *mongo.Client
	plans  *mongo.Collection
	aiLogs *mongo.Collection
}

func NewMongoStore(client *mongo.Client, d *mongo.Database) *MongoStore {
	return &MongoStore{
		client: client,
		plans:  d.Collection(db.CollectionIdeaPlans),
		aiLogs: d.Collection(db.CollectionAILogs),
	}
}

// planDocument 는 idea_plans 컬렉션 문서 형태다. (_id 는 ObjectID)
type planDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.IdeaPlan `bson:",inline"`
}

func (s *MongoStore) CreatePlan(ctx context.Context, plan *models.IdeaPlan) (*models.IdeaPlan, error) {
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	doc := planDocument{ID: primitive.NewObjectID(), IdeaPlan: *clonePlan(plan)}
	if _, err := s.plans.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	out := clonePlan(plan)
	out.ID = doc.ID.Hex()
	return out, nil
}

func (s *MongoStore) FindPlanByID(ctx context.Context, id string) (*models.IdeaPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc planDocument
	if err := s.plans.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) ListPlansByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.IdeaPlan, int64, error) {
	filter := bson.M{"owner_id": ownerID}
	total, err := s.plans.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.plans.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]*models.IdeaPlan, 0, limit)
	for cur.Next(ctx) {
		var doc planDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *MongoStore) DeletePlan(ctx context.Context, id, ownerID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.plans.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) InsertAILog(ctx context.Context, log *models.AILog) error {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	res, err := s.aiLogs.InsertOne(ctx, log)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid.Hex()
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d planDocument) toModel() *models.IdeaPlan {
	out := d.IdeaPlan
	out.ID = d.ID.Hex()
	return &out
}
