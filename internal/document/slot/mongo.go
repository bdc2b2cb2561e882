package slot

import (
	"context"
	"fmt"

	"github.com/inkweld/inkweld/backend/go-services/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlot keeps the snapshot as a single record {_id: <key>, value: <bytes>}
// in a collection, upserted whole on every write. The slot is logically one
// key, so one record is the entire schema.
type MongoSlot struct {
	col *mongo.Collection
	key string
}

// OpenMongoSlot connects and pings with the configured timeout.
func OpenMongoSlot(ctx context.Context, cfg config.StorageConfig, key string) (*MongoSlot, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set")
	}
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	col := client.Database(cfg.MongoDatabase).Collection("slots")
	return NewMongoSlot(col, key), nil
}

func NewMongoSlot(col *mongo.Collection, key string) *MongoSlot {
	return &MongoSlot{col: col, key: key}
}

type mongoRecord struct {
	ID    string `bson:"_id"`
	Value []byte `bson:"value"`
}

func (m *MongoSlot) Read(ctx context.Context) ([]byte, bool, error) {
	var rec mongoRecord
	err := m.col.FindOne(ctx, bson.M{"_id": m.key}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, err
	}
	return rec.Value, true, nil
}

func (m *MongoSlot) Write(ctx context.Context, data []byte) error {
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.key},
		mongoRecord{ID: m.key, Value: data}, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoSlot) Clear(ctx context.Context) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": m.key})
	return err
}

func (m *MongoSlot) Backend() string { return "mongo" }
