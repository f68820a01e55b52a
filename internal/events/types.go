package events

import "time"

// Envelope wraps every published event.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SchemaVersion  string    `json:"schema_version"`
	IdempotencyKey string    `json:"idempotency_key"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
	Subject        string    `json:"subject,omitempty"`
	Data           any       `json:"data"`
}

type TrustScoreComputedData struct {
	ContractorID      string `json:"contractor_id"`
	Score             int    `json:"score"`
	Level             string `json:"level"`
	VerificationScore int    `json:"verification_score"`
	PerformanceScore  int    `json:"performance_score"`
	ReliabilityScore  int    `json:"reliability_score"`
}

type TrustLevelChangedData struct {
	ContractorID  string `json:"contractor_id"`
	PreviousLevel string `json:"previous_level"`
	NewLevel      string `json:"new_level"`
	PreviousScore int    `json:"previous_score"`
	NewScore      int    `json:"new_score"`
}

type SnapshotSyncedData struct {
	OwnerID      string    `json:"owner_id"`
	Projects     int       `json:"projects"`
	Milestones   int       `json:"milestones"`
	Applications int       `json:"applications"`
	Bids         int       `json:"bids"`
	Appointments int       `json:"appointments"`
	SyncedAt     time.Time `json:"synced_at"`
}

type AlertsRaisedData struct {
	OwnerID  string   `json:"owner_id"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	AlertIDs []string `json:"alert_ids"`
}

const (
	EventTrustScoreComputed = "trust.score_computed"
	EventTrustLevelChanged  = "trust.level_changed"
	EventSnapshotSynced     = "snapshot.synced"
	EventAlertsRaised       = "alerts.raised"
)

// AllEventTypes lists every type the service emits.
var AllEventTypes = []string{
	EventTrustScoreComputed,
	EventTrustLevelChanged,
	EventSnapshotSynced,
	EventAlertsRaised,
}
