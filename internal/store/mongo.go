package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database, one Mongo collection
// per content collection. Document identifiers are hex ObjectIDs generated
// on Add; singleton documents keep their caller-provided key via Put.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoStore{
		client:   client,
		database: client.Database(database),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := s.database.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	delete(raw, "_id")
	return normalizeBSON(raw)
}

func (s *MongoStore) List(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	findOpts := options.Find()
	if opts.OrderBy != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.OrderBy, Value: dir}})
	}

	cursor, err := s.database.Collection(collection).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records []Record
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		id, _ := raw["_id"].(string)
		delete(raw, "_id")
		doc, err := normalizeBSON(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{ID: id, Data: doc})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return records, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := primitive.NewObjectID().Hex()
	if _, err := s.database.Collection(collection).InsertOne(ctx, insertPayload(doc, id)); err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return id, nil
}

// insertPayload builds the wire document with the generated key. The
// caller's document is never touched.
func insertPayload(doc Document, id string) bson.M {
	payload := make(bson.M, len(doc)+1)
	for k, v := range doc {
		payload[k] = v
	}
	payload["_id"] = id
	return payload
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, doc Document) error {
	res, err := s.database.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, bson.M(doc))
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Put(ctx context.Context, collection, id string, doc Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.database.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, bson.M(doc), opts); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.database.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// normalizeBSON converts the driver's bson.M/bson.A value tree into the
// plain JSON types the Store contract promises.
func normalizeBSON(raw bson.M) (Document, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	return doc, nil
}
