package model

import "time"

type Role string

const (
	RoleProjectManager  Role = "Project Manager"
	RoleAdmin           Role = "Admin"
	RoleGC              Role = "GC"
	RoleSubcontractor   Role = "Subcontractor"
	RoleTradeSpecialist Role = "Trade Specialist"
	RoleHomeowner       Role = "Homeowner"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID      string        `json:"id" bson:"id" firestore:"id"`
	Title   string        `json:"title" bson:"title" firestore:"title"`
	OwnerID string        `json:"owner_id" bson:"owner_id" firestore:"owner_id"`
	Status  ProjectStatus `json:"status" bson:"status" firestore:"status"`

	Budget               float64 `json:"budget" bson:"budget" firestore:"budget"`
	Spent                float64 `json:"spent" bson:"spent" firestore:"spent"`
	CompletionPercentage float64 `json:"completion_percentage" bson:"completion_percentage" firestore:"completion_percentage"`

	StartDate       time.Time  `json:"start_date" bson:"start_date" firestore:"start_date"`
	EndDate         time.Time  `json:"end_date" bson:"end_date" firestore:"end_date"`
	ActualStartDate *time.Time `json:"actual_start_date,omitempty" bson:"actual_start_date,omitempty" firestore:"actual_start_date,omitempty"`
	ActualEndDate   *time.Time `json:"actual_end_date,omitempty" bson:"actual_end_date,omitempty" firestore:"actual_end_date,omitempty"`
}

type MilestoneStatus string

const (
	MilestonePending       MilestoneStatus = "pending"
	MilestoneInProgress    MilestoneStatus = "in_progress"
	MilestonePendingReview MilestoneStatus = "pending_review"
	MilestoneApproved      MilestoneStatus = "approved"
	MilestoneRejected      MilestoneStatus = "rejected"
	MilestonePaid          MilestoneStatus = "paid"
)

type Milestone struct {
	ID         string          `json:"id" bson:"id" firestore:"id"`
	ProjectID  string          `json:"project_id" bson:"project_id" firestore:"project_id"`
	Title      string          `json:"title" bson:"title" firestore:"title"`
	AssigneeID string          `json:"assignee_id,omitempty" bson:"assignee_id,omitempty" firestore:"assignee_id,omitempty"`
	Amount     float64         `json:"amount" bson:"amount" firestore:"amount"`
	Status     MilestoneStatus `json:"status" bson:"status" firestore:"status"`

	DueDate     time.Time  `json:"due_date" bson:"due_date" firestore:"due_date"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" bson:"submitted_at,omitempty" firestore:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty" firestore:"approved_at,omitempty"`
}

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobFilled     JobStatus = "filled"
	JobClosed     JobStatus = "closed"
)

type Job struct {
	ID        string    `json:"id" bson:"id" firestore:"id"`
	Title     string    `json:"title" bson:"title" firestore:"title"`
	PosterID  string    `json:"poster_id" bson:"poster_id" firestore:"poster_id"`
	Trade     string    `json:"trade" bson:"trade" firestore:"trade"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty" firestore:"location,omitempty"`
	Budget    float64   `json:"budget" bson:"budget" firestore:"budget"`
	Status    JobStatus `json:"status" bson:"status" firestore:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" firestore:"created_at"`
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type JobApplication struct {
	ID          string            `json:"id" bson:"id" firestore:"id"`
	JobID       string            `json:"job_id" bson:"job_id" firestore:"job_id"`
	ApplicantID string            `json:"applicant_id" bson:"applicant_id" firestore:"applicant_id"`
	Status      ApplicationStatus `json:"status" bson:"status" firestore:"status"`
	AppliedAt   time.Time         `json:"applied_at" bson:"applied_at" firestore:"applied_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty" firestore:"reviewed_at,omitempty"`
}

type BidStatus string

const (
	BidOpen        BidStatus = "open"
	BidSubmitted   BidStatus = "submitted"
	BidUnderReview BidStatus = "under_review"
	BidAwarded     BidStatus = "awarded"
	BidDeclined    BidStatus = "declined"
	BidClosed      BidStatus = "closed"
)

type Bid struct {
	ID              string    `json:"id" bson:"id" firestore:"id"`
	Title           string    `json:"title" bson:"title" firestore:"title"`
	ProjectID       string    `json:"project_id,omitempty" bson:"project_id,omitempty" firestore:"project_id,omitempty"`
	CreatedBy       string    `json:"created_by" bson:"created_by" firestore:"created_by"`
	InvitedUserIDs  []string  `json:"invited_user_ids" bson:"invited_user_ids" firestore:"invited_user_ids"`
	Status          BidStatus `json:"status" bson:"status" firestore:"status"`
	Amount          float64   `json:"amount" bson:"amount" firestore:"amount"`
	DueDate         time.Time `json:"due_date" bson:"due_date" firestore:"due_date"`
	SubmissionCount int       `json:"submission_count" bson:"submission_count" firestore:"submission_count"`
}

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID          string            `json:"id" bson:"id" firestore:"id"`
	Title       string            `json:"title" bson:"title" firestore:"title"`
	OrganizerID string            `json:"organizer_id" bson:"organizer_id" firestore:"organizer_id"`
	AttendeeIDs []string          `json:"attendee_ids" bson:"attendee_ids" firestore:"attendee_ids"`
	Location    string            `json:"location,omitempty" bson:"location,omitempty" firestore:"location,omitempty"`
	Status      AppointmentStatus `json:"status" bson:"status" firestore:"status"`
	ScheduledAt time.Time         `json:"scheduled_at" bson:"scheduled_at" firestore:"scheduled_at"`
}

// Snapshot is the synced state of one user's workspace. The insight
// functions only ever read it.
type Snapshot struct {
	OwnerID string `json:"owner_id" bson:"owner_id" firestore:"owner_id"`

	Projects     []Project        `json:"projects" bson:"projects" firestore:"projects"`
	Milestones   []Milestone      `json:"milestones" bson:"milestones" firestore:"milestones"`
	Jobs         []Job            `json:"jobs" bson:"jobs" firestore:"jobs"`
	Applications []JobApplication `json:"applications" bson:"applications" firestore:"applications"`
	Bids         []Bid            `json:"bids" bson:"bids" firestore:"bids"`
	Appointments []Appointment    `json:"appointments" bson:"appointments" firestore:"appointments"`

	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" firestore:"updated_at"`
}
