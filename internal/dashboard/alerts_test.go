package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonhazen/bidroom/internal/model"
)

func alertIDs(items []model.AlertItem) []string {
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestAlerts_ProjectRules(t *testing.T) {
	tests := []struct {
		name    string
		project model.Project
		want    []string
	}{
		{
			name:    "deadline approaching and behind schedule together",
			project: model.Project{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(5 * day), CompletionPercentage: 30},
			want:    []string{"project-deadline-p1", "project-behind-p1"},
		},
		{
			name:    "overdue but mostly complete",
			project: model.Project{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(-2 * day), CompletionPercentage: 80},
			want:    []string{"project-overdue-p1"},
		},
		{
			name:    "overdue and behind",
			project: model.Project{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(-2 * day), CompletionPercentage: 20},
			want:    []string{"project-overdue-p1", "project-behind-p1"},
		},
		{
			name:    "far deadline low completion",
			project: model.Project{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(45 * day), CompletionPercentage: 10},
			want:    []string{},
		},
		{
			name:    "deadline in window but on track",
			project: model.Project{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(7 * day), CompletionPercentage: 90},
			want:    []string{"project-deadline-p1"},
		},
		{
			name:    "inactive project ignored",
			project: model.Project{ID: "p1", Status: model.ProjectOnHold, EndDate: now.Add(-2 * day), CompletionPercentage: 10},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alerts(model.Snapshot{Projects: []model.Project{tt.project}}, now)
			assert.Equal(t, tt.want, alertIDs(got))
		})
	}
}

func TestAlerts_DeadlineAndBehindAreWarnings(t *testing.T) {
	p := model.Project{ID: "p1", Title: "Kitchen remodel", Status: model.ProjectActive, EndDate: now.Add(5 * day), CompletionPercentage: 30}

	got := Alerts(model.Snapshot{Projects: []model.Project{p}}, now)

	require.Len(t, got, 2)
	for _, a := range got {
		assert.Equal(t, model.AlertWarning, a.Type)
		assert.Equal(t, "/projects/p1", a.ActionURL)
		assert.Equal(t, now, a.CreatedAt)
	}
	assert.Equal(t, "Kitchen remodel is due in 5 days", got[0].Message)
}

func TestAlerts_MilestoneReview(t *testing.T) {
	stale := model.Milestone{ID: "m1", Status: model.MilestonePendingReview, SubmittedAt: at(-4 * day)}
	fresh := model.Milestone{ID: "m2", Status: model.MilestonePendingReview, SubmittedAt: at(-2 * day)}
	unsubmitted := model.Milestone{ID: "m3", Status: model.MilestonePendingReview}
	boundary := model.Milestone{ID: "m4", Status: model.MilestonePendingReview, SubmittedAt: at(-3 * day)}
	justUnder := model.Milestone{ID: "m5", Status: model.MilestonePendingReview, SubmittedAt: at(-3*day + time.Minute)}

	got := Alerts(model.Snapshot{Milestones: []model.Milestone{stale}}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "milestone-review-m1", got[0].ID)
	assert.Equal(t, model.AlertWarning, got[0].Type)

	assert.Empty(t, Alerts(model.Snapshot{Milestones: []model.Milestone{fresh}}, now))
	assert.Empty(t, Alerts(model.Snapshot{Milestones: []model.Milestone{unsubmitted}}, now))

	got = Alerts(model.Snapshot{Milestones: []model.Milestone{boundary}}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "milestone-review-m4", got[0].ID)
	assert.Equal(t, model.AlertWarning, got[0].Type)

	assert.Empty(t, Alerts(model.Snapshot{Milestones: []model.Milestone{justUnder}}, now))
}

func TestAlerts_MilestoneOverdue(t *testing.T) {
	s := model.Snapshot{Milestones: []model.Milestone{
		{ID: "late", Status: model.MilestoneInProgress, DueDate: now.Add(-1 * day)},
		{ID: "ok", Status: model.MilestoneInProgress, DueDate: now.Add(1 * day)},
		{ID: "approved", Status: model.MilestoneApproved, DueDate: now.Add(-10 * day)},
	}}

	got := Alerts(s, now)

	require.Len(t, got, 1)
	assert.Equal(t, "milestone-overdue-late", got[0].ID)
	assert.Equal(t, model.AlertError, got[0].Type)
}

func TestAlerts_PendingApplications(t *testing.T) {
	apps := func(n int) []model.JobApplication {
		out := make([]model.JobApplication, n)
		for i := range out {
			out[i].Status = model.ApplicationPending
		}
		return out
	}

	assert.Empty(t, Alerts(model.Snapshot{Applications: apps(5)}, now))

	got := Alerts(model.Snapshot{Applications: apps(6)}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "applications-pending", got[0].ID)
	assert.Equal(t, model.AlertInfo, got[0].Type)
	assert.Equal(t, "You have 6 pending job applications to review", got[0].Message)
}

func TestAlerts_AppointmentReminder(t *testing.T) {
	s := model.Snapshot{Appointments: []model.Appointment{
		{ID: "soon", Title: "Site walk", Status: model.AppointmentScheduled, ScheduledAt: now.Add(3 * time.Hour)},
		{ID: "edge", Status: model.AppointmentScheduled, ScheduledAt: now.Add(24 * time.Hour)},
		{ID: "later", Status: model.AppointmentScheduled, ScheduledAt: now.Add(25 * time.Hour)},
		{ID: "past", Status: model.AppointmentScheduled, ScheduledAt: now.Add(-time.Hour)},
		{ID: "cancelled", Status: model.AppointmentCancelled, ScheduledAt: now.Add(time.Hour)},
	}}

	got := Alerts(s, now)

	assert.Equal(t, []string{"appointment-reminder-soon", "appointment-reminder-edge"}, alertIDs(got))
	assert.Equal(t, "Site walk starts in 3 hours", got[0].Message)
}

func TestAlerts_SortedBySeverityStable(t *testing.T) {
	s := model.Snapshot{
		Projects: []model.Project{
			{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(3 * day), CompletionPercentage: 90},
			{ID: "p2", Status: model.ProjectActive, EndDate: now.Add(-1 * day), CompletionPercentage: 90},
			{ID: "p3", Status: model.ProjectActive, EndDate: now.Add(2 * day), CompletionPercentage: 95},
		},
		Milestones: []model.Milestone{
			{ID: "m1", Status: model.MilestoneInProgress, DueDate: now.Add(-3 * day)},
		},
		Appointments: []model.Appointment{
			{ID: "a1", Status: model.AppointmentScheduled, ScheduledAt: now.Add(2 * time.Hour)},
		},
	}

	got := Alerts(s, now)

	assert.Equal(t, []string{
		"project-overdue-p2",
		"milestone-overdue-m1",
		"project-deadline-p1",
		"project-deadline-p3",
		"appointment-reminder-a1",
	}, alertIDs(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, severity[got[i-1].Type], severity[got[i].Type])
	}
}

func TestAlerts_Deterministic(t *testing.T) {
	s := model.Snapshot{Projects: []model.Project{
		{ID: "p1", Status: model.ProjectActive, EndDate: now.Add(5 * day), CompletionPercentage: 30},
	}}
	assert.Equal(t, Alerts(s, now), Alerts(s, now))
}
