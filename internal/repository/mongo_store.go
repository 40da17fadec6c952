package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "kv_store"

type mongoDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per key. SetMany is only all-or-nothing when
// transactions are enabled, which requires a replica set.
type MongoStore struct {
	client       *mongo.Client
	collection   *mongo.Collection
	transactions bool
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func NewMongoStore(db *mongo.Database, transactions bool) *MongoStore {
	return &MongoStore{
		client:       db.Client(),
		collection:   db.Collection(mongoCollection),
		transactions: transactions,
	}
}

func (m *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (m *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": string(value), "updated_at": time.Now().UTC()}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": e.Key}).
			SetUpdate(bson.M{"$set": bson.M{"value": string(e.Value), "updated_at": now}}).
			SetUpsert(true))
	}
	write := func(ctx context.Context) error {
		_, err := m.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
		return err
	}

	if !m.transactions {
		if err := write(ctx); err != nil {
			return fmt.Errorf("failed to write entries: %w", err)
		}
		return nil
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, write(sc)
	})
	if err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	cur, err := m.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query prefix %s: %w", prefix, err)
	}
	return decodeEntries(ctx, cur)
}

func (m *MongoStore) MGet(ctx context.Context, keys ...string) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cur, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	entries, err := decodeEntries(ctx, cur)
	if err != nil {
		return nil, err
	}

	found := make(map[string][]byte, len(entries))
	for _, e := range entries {
		found[e.Key] = e.Value
	}
	return orderByKeys(keys, found), nil
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func decodeEntries(ctx context.Context, cur *mongo.Cursor) ([]Entry, error) {
	defer cur.Close(ctx)

	var out []Entry
	for cur.Next(ctx) {
		var doc mongoDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode entry: %w", err)
		}
		out = append(out, Entry{Key: doc.Key, Value: []byte(doc.Value)})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}
