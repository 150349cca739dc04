package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nova-properties/backend/models"
)

// Mongo bundles the collection-backed store implementations.
type Mongo struct {
	Users        *MongoUserStore
	Properties   *MongoPropertyStore
	Agents       *MongoAgentStore
	Testimonials *MongoTestimonialStore
	Messages     *MongoMessageStore
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		Users:        &MongoUserStore{col: db.Collection("users")},
		Properties:   &MongoPropertyStore{col: db.Collection("properties")},
		Agents:       &MongoAgentStore{col: db.Collection("agents")},
		Testimonials: &MongoTestimonialStore{col: db.Collection("testimonials")},
		Messages:     &MongoMessageStore{col: db.Collection("messages")},
	}
}

type MongoUserStore struct {
	col *mongo.Collection
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *MongoUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) UpdateFavourites(ctx context.Context, id primitive.ObjectID, favourites []primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"favourites": favourites}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoPropertyStore struct {
	col *mongo.Collection
}

func (s *MongoPropertyStore) Page(ctx context.Context, skip, limit int64) ([]models.Property, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoPropertyStore) Featured(ctx context.Context, limit int64) ([]models.Property, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fetched []models.Property
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, err
	}

	// $in does not preserve order; reassemble in the order of ids.
	byID := make(map[primitive.ObjectID]models.Property, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	properties := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

type MongoAgentStore struct {
	col *mongo.Collection
}

func (s *MongoAgentStore) List(ctx context.Context, limit int64) ([]models.Agent, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agents := []models.Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *MongoAgentStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error) {
	var agent models.Agent
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

type MongoTestimonialStore struct {
	col *mongo.Collection
}

func (s *MongoTestimonialStore) List(ctx context.Context, limit int64) ([]models.Testimonial, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

type MongoMessageStore struct {
	col *mongo.Collection
}

func (s *MongoMessageStore) Insert(ctx context.Context, msg *models.UserMessage) error {
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
