package store

import (
	"context"

	"github.com/wilsonhazen/bidroom/internal/model"
)

// Store persists contractor profiles and workspace snapshots. Getters return
// (nil, nil) when the record does not exist.
type Store interface {
	UpsertContractor(ctx context.Context, c model.Contractor) error
	GetContractor(ctx context.Context, id string) (*model.Contractor, error)
	ListContractors(ctx context.Context, limit int) ([]model.Contractor, error)

	SaveSnapshot(ctx context.Context, s model.Snapshot) error
	GetSnapshot(ctx context.Context, ownerID string) (*model.Snapshot, error)
}
