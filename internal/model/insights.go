package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TrustLevel string

const (
	TrustExcellent TrustLevel = "excellent"
	TrustGood      TrustLevel = "good"
	TrustFair      TrustLevel = "fair"
	TrustPoor      TrustLevel = "poor"
)

// TrustScore is derived on demand and never stored.
type TrustScore struct {
	Score             int        `json:"score"`
	Level             TrustLevel `json:"level"`
	VerificationScore int        `json:"verification_score"`
	PerformanceScore  int        `json:"performance_score"`
	ReliabilityScore  int        `json:"reliability_score"`
}

type TrustReport struct {
	ContractorID string     `json:"contractor_id,omitempty"`
	Trust        TrustScore `json:"trust"`
	Suggestions  []string   `json:"suggestions"`
}

type AlertType string

const (
	AlertError   AlertType = "error"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
	AlertSuccess AlertType = "success"
)

type AlertItem struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"action_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalProjects     int `json:"total_projects"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	OnHoldProjects    int `json:"on_hold_projects"`

	TotalBudget     decimal.Decimal `json:"total_budget"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	BudgetRemaining decimal.Decimal `json:"budget_remaining"`

	CompletionRate         int     `json:"completion_rate"`
	AverageProjectDuration float64 `json:"average_project_duration_days"`
	AverageCompletion      int     `json:"average_completion_percentage"`

	TotalJobs int `json:"total_jobs"`
	OpenJobs  int `json:"open_jobs"`

	TotalApplications    int `json:"total_applications"`
	PendingApplications  int `json:"pending_applications"`
	AcceptedApplications int `json:"accepted_applications"`

	TotalMilestones    int             `json:"total_milestones"`
	PendingReview      int             `json:"milestones_pending_review"`
	OverdueMilestones  int             `json:"overdue_milestones"`
	MilestoneValue     decimal.Decimal `json:"milestone_value"`
	PaidMilestoneValue decimal.Decimal `json:"paid_milestone_value"`

	UpcomingAppointments int `json:"upcoming_appointments"`
	OpenBids             int `json:"open_bids"`
}

type WorkflowMetrics struct {
	ApplicationAcceptanceRate int     `json:"application_acceptance_rate"`
	BidWinRate                int     `json:"bid_win_rate"`
	MilestoneApprovalRate     int     `json:"milestone_approval_rate"`
	AverageReviewHours        float64 `json:"average_review_hours"`
	AverageResponseHours      float64 `json:"average_application_response_hours"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type NextAction struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ActionURL   string     `json:"action_url,omitempty"`
}

type Match struct {
	ContractorID string     `json:"contractor_id"`
	Name         string     `json:"name"`
	Score        int        `json:"score"`
	Trust        TrustScore `json:"trust"`
	Reasons      []string   `json:"reasons"`
}
