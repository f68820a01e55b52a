package store

import (
	"context"
	"sort"
	"sync"

	"github.com/wilsonhazen/bidroom/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	contractors map[string]model.Contractor
	snapshots   map[string]model.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contractors: map[string]model.Contractor{},
		snapshots:   map[string]model.Snapshot{},
	}
}

func (s *MemoryStore) UpsertContractor(ctx context.Context, c model.Contractor) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contractors[c.ID] = cloneContractor(c)
	return nil
}

func (s *MemoryStore) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contractors[id]
	if !ok {
		return nil, nil
	}
	out := cloneContractor(c)
	return &out, nil
}

// ListContractors returns contractors ordered by id.
func (s *MemoryStore) ListContractors(ctx context.Context, limit int) ([]model.Contractor, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.contractors))
	for id := range s.contractors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]model.Contractor, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneContractor(s.contractors[id]))
	}
	return out, nil
}

func (s *MemoryStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.OwnerID] = cloneSnapshot(snap)
	return nil
}

func (s *MemoryStore) GetSnapshot(ctx context.Context, ownerID string) (*model.Snapshot, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[ownerID]
	if !ok {
		return nil, nil
	}
	out := cloneSnapshot(snap)
	return &out, nil
}

// Slices are copied; time pointers inside elements are shared.
func cloneContractor(c model.Contractor) model.Contractor {
	c.Specialties = append([]string(nil), c.Specialties...)
	c.Verifications = append([]model.Verification(nil), c.Verifications...)
	if c.TrustIndicators != nil {
		ti := *c.TrustIndicators
		c.TrustIndicators = &ti
	}
	return c
}

func cloneSnapshot(s model.Snapshot) model.Snapshot {
	s.Projects = append([]model.Project(nil), s.Projects...)
	s.Milestones = append([]model.Milestone(nil), s.Milestones...)
	s.Jobs = append([]model.Job(nil), s.Jobs...)
	s.Applications = append([]model.JobApplication(nil), s.Applications...)
	s.Bids = append([]model.Bid(nil), s.Bids...)
	s.Appointments = append([]model.Appointment(nil), s.Appointments...)
	return s
}
