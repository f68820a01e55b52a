package service

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/wilsonhazen/bidroom/internal/dashboard"
	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/report"
	"github.com/wilsonhazen/bidroom/internal/trust"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BatchTrustRequest struct {
	ContractorIDs []string `json:"contractor_ids"`
}

type BatchTrustResponse struct {
	Scores map[string]int `json:"scores"`
}

type MatchRequest struct {
	Job   model.Job `json:"job"`
	Limit int       `json:"limit,omitempty"`
}

type MatchResponse struct {
	JobID   string        `json:"job_id,omitempty"`
	Matches []model.Match `json:"matches"`
}

type DashboardResponse struct {
	OwnerID     string                `json:"owner_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Stats       model.DashboardStats  `json:"stats"`
	Workflow    model.WorkflowMetrics `json:"workflow"`
}

func (s *Service) HandlePutContractor(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "contractor id is required", http.StatusBadRequest)
		return
	}
	var c model.Contractor
	if err := decodeJSON(r, &c); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if c.ID != "" && c.ID != id {
		http.Error(w, "contractor id does not match path", http.StatusBadRequest)
		return
	}
	c.ID = id

	rep, err := s.SaveContractor(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Service) HandleGetTrust(w http.ResponseWriter, r *http.Request) {
	rep, err := s.ContractorTrust(r.Context(), strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleScoreTrust scores a posted profile without storing it.
func (s *Service) HandleScoreTrust(w http.ResponseWriter, r *http.Request) {
	var c model.Contractor
	if err := decodeJSON(r, &c); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.score(c))
}

func (s *Service) HandleBatchTrust(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req BatchTrustRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	out := BatchTrustResponse{Scores: map[string]int{}}
	for _, id := range req.ContractorIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		c, err := s.store.GetContractor(ctx, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if c == nil {
			continue
		}
		out.Scores[id] = trust.Calculate(*c).Score
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) HandlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.PathValue("owner"))
	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}
	var snap model.Snapshot
	if err := decodeJSON(r, &snap); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if snap.OwnerID != "" && snap.OwnerID != owner {
		http.Error(w, "owner_id does not match path", http.StatusBadRequest)
		return
	}
	snap.OwnerID = owner

	alerts, err := s.SaveSnapshot(r.Context(), snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"saved":    true,
		"owner_id": owner,
		"alerts":   alerts,
	})
}

func (s *Service) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	now := s.now()
	writeJSON(w, http.StatusOK, DashboardResponse{
		OwnerID:     snap.OwnerID,
		GeneratedAt: now,
		Stats:       dashboard.Stats(snap, now),
		Workflow:    dashboard.Workflow(snap),
	})
}

func (s *Service) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"owner_id": snap.OwnerID,
		"alerts":   s.alerts(snap, s.now()),
	})
}

func (s *Service) HandleGetActions(w http.ResponseWriter, r *http.Request) {
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role == "" {
		http.Error(w, "role is required", http.StatusBadRequest)
		return
	}
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"owner_id": snap.OwnerID,
		"role":     role,
		"actions":  dashboard.NextActions(snap, model.Role(role), userID, s.now()),
	})
}

func (s *Service) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	now := s.now()
	d := report.Dashboard{
		OwnerID:     snap.OwnerID,
		GeneratedAt: now,
		Stats:       dashboard.Stats(snap, now),
		Workflow:    dashboard.Workflow(snap),
		Alerts:      dashboard.Alerts(snap, now),
		Actions:     dashboard.NextActions(snap, model.Role(r.URL.Query().Get("role")), r.URL.Query().Get("user_id"), now),
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, d); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard-`+snap.OwnerID+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Service) HandleMatchJob(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Job.Trade) == "" {
		http.Error(w, "job.trade is required", http.StatusBadRequest)
		return
	}
	matches, err := s.MatchJob(r.Context(), req.Job, req.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{JobID: req.Job.ID, Matches: matches})
}

func (s *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Service) loadSnapshot(w http.ResponseWriter, r *http.Request) (model.Snapshot, bool) {
	snap, err := s.Snapshot(r.Context(), strings.TrimSpace(r.PathValue("owner")))
	if err != nil {
		s.writeError(w, r, err)
		return model.Snapshot{}, false
	}
	return snap, true
}
