package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wilsonhazen/bidroom/internal/model"
)

type FirestoreStore struct {
	client      *firestore.Client
	contractors string
	snapshots   string
}

func NewFirestoreStore(ctx context.Context, projectID, contractorsColl, snapshotsColl string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreStore{
		client:      client,
		contractors: contractorsColl,
		snapshots:   snapshotsColl,
	}, nil
}

func (s *FirestoreStore) UpsertContractor(ctx context.Context, c model.Contractor) error {
	if _, err := s.client.Collection(s.contractors).Doc(c.ID).Set(ctx, c); err != nil {
		return fmt.Errorf("save contractor: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	doc, err := s.client.Collection(s.contractors).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	var c model.Contractor
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("decode contractor: %w", err)
	}
	return &c, nil
}

func (s *FirestoreStore) ListContractors(ctx context.Context, limit int) ([]model.Contractor, error) {
	query := s.client.Collection(s.contractors).OrderBy(firestore.DocumentID, firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	out := []model.Contractor{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate contractors: %w", err)
		}
		var c model.Contractor
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("decode contractor: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *FirestoreStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	if _, err := s.client.Collection(s.snapshots).Doc(snap.OwnerID).Set(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetSnapshot(ctx context.Context, ownerID string) (*model.Snapshot, error) {
	doc, err := s.client.Collection(s.snapshots).Doc(ownerID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := doc.DataTo(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
