package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const opTimeout = 5 * time.Second

type MongoStore struct {
	contractors *mongo.Collection
	snapshots   *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName, contractorsColl, snapshotsColl string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		contractors: db.Collection(contractorsColl),
		snapshots:   db.Collection(snapshotsColl),
	}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.contractors.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "trade", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) UpsertContractor(ctx context.Context, c model.Contractor) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.contractors.ReplaceOne(ctx, bson.M{"id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var c model.Contractor
	if err := s.contractors.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *MongoStore) ListContractors(ctx context.Context, limit int) ([]model.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.contractors.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Contractor{}
	for cur.Next(ctx) {
		var c model.Contractor
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.snapshots.ReplaceOne(ctx, bson.M{"owner_id": snap.OwnerID}, snap, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) GetSnapshot(ctx context.Context, ownerID string) (*model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var snap model.Snapshot
	if err := s.snapshots.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&snap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}
