package dashboard

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const urgentDays = 3

var priorityRank = map[model.Priority]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// NextActions lists what the user should do next. Reviewers (project managers
// and admins) get review queues; field roles get their own deadlines. Other
// roles get an empty list.
func NextActions(s model.Snapshot, role model.Role, userID string, now time.Time) []model.NextAction {
	var out []model.NextAction
	switch role {
	case model.RoleProjectManager, model.RoleAdmin:
		out = reviewerActions(s, now)
	case model.RoleGC, model.RoleSubcontractor, model.RoleTradeSpecialist:
		out = fieldActions(s, userID, now)
	default:
		out = []model.NextAction{}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out
}

func reviewerActions(s model.Snapshot, now time.Time) []model.NextAction {
	out := []model.NextAction{}
	for _, m := range s.Milestones {
		if m.Status != model.MilestonePendingReview {
			continue
		}
		due := m.DueDate
		out = append(out, model.NextAction{
			ID:          "review-milestone-" + m.ID,
			Type:        "milestone_review",
			Title:       "Review milestone: " + m.Title,
			Description: fmt.Sprintf("Approve or reject the submitted work (%s)", formatAmount(m.Amount)),
			Priority:    byDeadline(due, now, model.PriorityMedium),
			DueDate:     &due,
			ActionURL:   "/milestones/" + m.ID,
		})
	}

	pending, oldest := 0, 0
	for _, a := range s.Applications {
		if a.Status != model.ApplicationPending {
			continue
		}
		pending++
		oldest = max(oldest, daysSince(a.AppliedAt, now))
	}
	if pending > 0 {
		prio := model.PriorityMedium
		if oldest >= urgentDays {
			prio = model.PriorityHigh
		}
		out = append(out, model.NextAction{
			ID:          "review-applications",
			Type:        "application_review",
			Title:       fmt.Sprintf("Review %d pending applications", pending),
			Description: "Accept or decline applicants waiting on a decision",
			Priority:    prio,
			ActionURL:   "/applications",
		})
	}

	for _, b := range s.Bids {
		if b.Status != model.BidSubmitted && b.Status != model.BidUnderReview {
			continue
		}
		due := b.DueDate
		out = append(out, model.NextAction{
			ID:          "review-bid-" + b.ID,
			Type:        "bid_review",
			Title:       "Review bid submissions: " + b.Title,
			Description: fmt.Sprintf("%d submissions received", b.SubmissionCount),
			Priority:    byDeadline(due, now, model.PriorityLow),
			DueDate:     &due,
			ActionURL:   "/bids/" + b.ID,
		})
	}
	return out
}

func fieldActions(s model.Snapshot, userID string, now time.Time) []model.NextAction {
	out := []model.NextAction{}
	for _, m := range s.Milestones {
		if m.AssigneeID != userID {
			continue
		}
		if m.Status != model.MilestonePending && m.Status != model.MilestoneInProgress {
			continue
		}
		due := m.DueDate
		out = append(out, model.NextAction{
			ID:          "milestone-due-" + m.ID,
			Type:        "milestone_due",
			Title:       "Complete milestone: " + m.Title,
			Description: fmt.Sprintf("Due in %d days", daysUntil(due, now)),
			Priority:    byDeadline(due, now, model.PriorityMedium),
			DueDate:     &due,
			ActionURL:   "/milestones/" + m.ID,
		})
	}

	for _, b := range s.Bids {
		if b.Status != model.BidOpen || !slices.Contains(b.InvitedUserIDs, userID) {
			continue
		}
		due := b.DueDate
		out = append(out, model.NextAction{
			ID:          "bid-due-" + b.ID,
			Type:        "bid_due",
			Title:       "Submit bid: " + b.Title,
			Description: fmt.Sprintf("Bid closes in %d days", daysUntil(due, now)),
			Priority:    byDeadline(due, now, model.PriorityLow),
			DueDate:     &due,
			ActionURL:   "/bids/" + b.ID,
		})
	}
	return out
}

// byDeadline is high when the deadline is at most urgentDays away, including
// deadlines already missed.
func byDeadline(due, now time.Time, otherwise model.Priority) model.Priority {
	if daysUntil(due, now) <= urgentDays {
		return model.PriorityHigh
	}
	return otherwise
}

func formatAmount(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
