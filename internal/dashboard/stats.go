// Package dashboard derives portfolio statistics, alerts and next actions
// from a workspace snapshot. Nothing here mutates its input or performs I/O.
package dashboard

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const day = 24 * time.Hour

func Stats(s model.Snapshot, now time.Time) model.DashboardStats {
	var st model.DashboardStats

	budget, spent := decimal.Zero, decimal.Zero
	var (
		durationSum   float64
		durationCount int
		activeCompSum float64
	)
	for _, p := range s.Projects {
		st.TotalProjects++
		switch p.Status {
		case model.ProjectActive:
			st.ActiveProjects++
			activeCompSum += p.CompletionPercentage
		case model.ProjectCompleted:
			st.CompletedProjects++
		case model.ProjectOnHold:
			st.OnHoldProjects++
		}
		budget = budget.Add(decimal.NewFromFloat(p.Budget))
		spent = spent.Add(decimal.NewFromFloat(p.Spent))

		if p.ActualStartDate != nil && p.ActualEndDate != nil {
			durationSum += p.ActualEndDate.Sub(*p.ActualStartDate).Hours() / 24
			durationCount++
		}
	}
	st.TotalBudget = budget.Round(2)
	st.TotalSpent = spent.Round(2)
	st.BudgetRemaining = budget.Sub(spent).Round(2)
	st.CompletionRate = percent(st.CompletedProjects, st.TotalProjects)
	st.AverageProjectDuration = average(durationSum, durationCount)
	if st.ActiveProjects > 0 {
		st.AverageCompletion = int(math.Round(activeCompSum / float64(st.ActiveProjects)))
	}

	for _, j := range s.Jobs {
		st.TotalJobs++
		if j.Status == model.JobOpen {
			st.OpenJobs++
		}
	}

	for _, a := range s.Applications {
		st.TotalApplications++
		switch a.Status {
		case model.ApplicationPending:
			st.PendingApplications++
		case model.ApplicationAccepted:
			st.AcceptedApplications++
		}
	}

	value, paid := decimal.Zero, decimal.Zero
	for _, m := range s.Milestones {
		st.TotalMilestones++
		amount := decimal.NewFromFloat(m.Amount)
		value = value.Add(amount)
		switch m.Status {
		case model.MilestonePendingReview:
			st.PendingReview++
		case model.MilestonePaid:
			paid = paid.Add(amount)
		case model.MilestonePending, model.MilestoneInProgress:
			if daysUntil(m.DueDate, now) < 0 {
				st.OverdueMilestones++
			}
		}
	}
	st.MilestoneValue = value.Round(2)
	st.PaidMilestoneValue = paid.Round(2)

	for _, a := range s.Appointments {
		if a.Status == model.AppointmentScheduled && a.ScheduledAt.After(now) {
			st.UpcomingAppointments++
		}
	}
	for _, b := range s.Bids {
		if b.Status == model.BidOpen {
			st.OpenBids++
		}
	}
	return st
}

// Workflow measures how quickly and how often work moves through review.
// Averages only consider records carrying both timestamps.
func Workflow(s model.Snapshot) model.WorkflowMetrics {
	var wm model.WorkflowMetrics

	var accepted, rejected int
	var responseSum float64
	var responseCount int
	for _, a := range s.Applications {
		switch a.Status {
		case model.ApplicationAccepted:
			accepted++
		case model.ApplicationRejected:
			rejected++
		}
		if a.ReviewedAt != nil {
			responseSum += a.ReviewedAt.Sub(a.AppliedAt).Hours()
			responseCount++
		}
	}
	wm.ApplicationAcceptanceRate = percent(accepted, accepted+rejected)
	wm.AverageResponseHours = average(responseSum, responseCount)

	var awarded, declined int
	for _, b := range s.Bids {
		switch b.Status {
		case model.BidAwarded:
			awarded++
		case model.BidDeclined:
			declined++
		}
	}
	wm.BidWinRate = percent(awarded, awarded+declined)

	var approved, refused int
	var reviewSum float64
	var reviewCount int
	for _, m := range s.Milestones {
		switch m.Status {
		case model.MilestoneApproved, model.MilestonePaid:
			approved++
		case model.MilestoneRejected:
			refused++
		}
		if m.SubmittedAt != nil && m.ApprovedAt != nil {
			reviewSum += m.ApprovedAt.Sub(*m.SubmittedAt).Hours()
			reviewCount++
		}
	}
	wm.MilestoneApprovalRate = percent(approved, approved+refused)
	wm.AverageReviewHours = average(reviewSum, reviewCount)
	return wm
}

// percent returns a rounded percentage, 0 when the denominator is 0.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

// average rounds to one decimal place and is 0 for an empty set.
func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}

// daysUntil counts partial days as whole days.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(float64(t.Sub(now)) / float64(day)))
}

func daysSince(t, now time.Time) int {
	return int(math.Floor(float64(now.Sub(t)) / float64(day)))
}
