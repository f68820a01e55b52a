package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wilsonhazen/bidroom/internal/dashboard"
	"github.com/wilsonhazen/bidroom/internal/events"
	"github.com/wilsonhazen/bidroom/internal/matching"
	"github.com/wilsonhazen/bidroom/internal/metrics"
	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/store"
	"github.com/wilsonhazen/bidroom/internal/trust"
)

// Publisher is satisfied by *events.Publisher.
type Publisher interface {
	Publish(ctx context.Context, eventType, subject string, data any) error
}

type Options struct {
	Publisher         Publisher
	Metrics           *metrics.Metrics
	Matcher           *matching.Matcher
	Logger            *slog.Logger
	Now               func() time.Time
	DefaultMatchLimit int
}

type Service struct {
	store      store.Store
	pub        Publisher
	metrics    *metrics.Metrics
	matcher    *matching.Matcher
	log        *slog.Logger
	now        func() time.Time
	matchLimit int
}

func New(st store.Store, opts Options) *Service {
	s := &Service{
		store:      st,
		pub:        opts.Publisher,
		metrics:    opts.Metrics,
		matcher:    opts.Matcher,
		log:        opts.Logger,
		now:        opts.Now,
		matchLimit: opts.DefaultMatchLimit,
	}
	if s.pub == nil {
		s.pub = events.NewPublisher("bidroom")
	}
	if s.matcher == nil {
		s.matcher = matching.New()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.matchLimit <= 0 {
		s.matchLimit = matching.DefaultLimit
	}
	return s
}

// SaveContractor stores a profile and reports its trust. When a stored
// profile already existed and its level differs, a level change is published.
func (s *Service) SaveContractor(ctx context.Context, c model.Contractor) (model.TrustReport, error) {
	if c.ID == "" {
		return model.TrustReport{}, fmt.Errorf("save contractor: id: %w", model.ErrInvalidInput)
	}
	prev, err := s.store.GetContractor(ctx, c.ID)
	if err != nil {
		return model.TrustReport{}, fmt.Errorf("load contractor %s: %w", c.ID, err)
	}
	c.UpdatedAt = s.now()
	if err := s.store.UpsertContractor(ctx, c); err != nil {
		return model.TrustReport{}, fmt.Errorf("save contractor %s: %w", c.ID, err)
	}

	report := s.score(c)
	ts := report.Trust
	_ = s.pub.Publish(ctx, events.EventTrustScoreComputed, c.ID, events.TrustScoreComputedData{
		ContractorID:      c.ID,
		Score:             ts.Score,
		Level:             string(ts.Level),
		VerificationScore: ts.VerificationScore,
		PerformanceScore:  ts.PerformanceScore,
		ReliabilityScore:  ts.ReliabilityScore,
	})
	if prev != nil {
		old := trust.Calculate(*prev)
		if old.Level != ts.Level {
			_ = s.pub.Publish(ctx, events.EventTrustLevelChanged, c.ID, events.TrustLevelChangedData{
				ContractorID:  c.ID,
				PreviousLevel: string(old.Level),
				NewLevel:      string(ts.Level),
				PreviousScore: old.Score,
				NewScore:      ts.Score,
			})
		}
	}
	return report, nil
}

func (s *Service) ContractorTrust(ctx context.Context, id string) (model.TrustReport, error) {
	c, err := s.store.GetContractor(ctx, id)
	if err != nil {
		return model.TrustReport{}, fmt.Errorf("load contractor %s: %w", id, err)
	}
	if c == nil {
		return model.TrustReport{}, fmt.Errorf("contractor %s: %w", id, model.ErrNotFound)
	}
	return s.score(*c), nil
}

// SaveSnapshot replaces the owner's workspace and returns the alerts it
// currently triggers.
func (s *Service) SaveSnapshot(ctx context.Context, snap model.Snapshot) ([]model.AlertItem, error) {
	if snap.OwnerID == "" {
		return nil, fmt.Errorf("save snapshot: owner_id: %w", model.ErrInvalidInput)
	}
	now := s.now()
	snap.UpdatedAt = now
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot %s: %w", snap.OwnerID, err)
	}
	if s.metrics != nil {
		s.metrics.RecordSnapshotSaved()
	}
	_ = s.pub.Publish(ctx, events.EventSnapshotSynced, snap.OwnerID, events.SnapshotSyncedData{
		OwnerID:      snap.OwnerID,
		Projects:     len(snap.Projects),
		Milestones:   len(snap.Milestones),
		Applications: len(snap.Applications),
		Bids:         len(snap.Bids),
		Appointments: len(snap.Appointments),
		SyncedAt:     now,
	})

	alerts := s.alerts(snap, now)
	raised := events.AlertsRaisedData{OwnerID: snap.OwnerID, AlertIDs: []string{}}
	for _, a := range alerts {
		switch a.Type {
		case model.AlertError:
			raised.Errors++
		case model.AlertWarning:
			raised.Warnings++
		default:
			continue
		}
		raised.AlertIDs = append(raised.AlertIDs, a.ID)
	}
	if raised.Errors > 0 {
		_ = s.pub.Publish(ctx, events.EventAlertsRaised, snap.OwnerID, raised)
	}
	return alerts, nil
}

func (s *Service) Snapshot(ctx context.Context, ownerID string) (model.Snapshot, error) {
	snap, err := s.store.GetSnapshot(ctx, ownerID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot %s: %w", ownerID, err)
	}
	if snap == nil {
		return model.Snapshot{}, fmt.Errorf("workspace %s: %w", ownerID, model.ErrNotFound)
	}
	return *snap, nil
}

// MatchJob ranks stored contractors for the job.
func (s *Service) MatchJob(ctx context.Context, job model.Job, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = s.matchLimit
	}
	contractors, err := s.store.ListContractors(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	matches := s.matcher.Match(job, contractors, limit)
	if s.metrics != nil {
		s.metrics.ObserveMatches(len(matches))
	}
	return matches, nil
}

func (s *Service) score(c model.Contractor) model.TrustReport {
	report := trust.Report(c)
	if s.metrics != nil {
		s.metrics.ObserveTrustScore(report.Trust.Score, string(report.Trust.Level))
	}
	return report
}

func (s *Service) alerts(snap model.Snapshot, now time.Time) []model.AlertItem {
	alerts := dashboard.Alerts(snap, now)
	if s.metrics != nil && len(alerts) > 0 {
		types := make([]string, len(alerts))
		for i, a := range alerts {
			types[i] = string(a.Type)
		}
		s.metrics.RecordAlerts(types)
	}
	return alerts
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		return err
	}
	defer func() { _ = r.Body.Close() }()
	return json.Unmarshal(body, v)
}

// writeError maps sentinel kinds to status codes; anything else is logged
// and reported as a 500.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
