package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const (
	deadlineWindowDays    = 7
	behindScheduleDays    = 30
	behindSchedulePercent = 50
	reviewStallDays       = 3
	pendingApplicationCap = 5
	appointmentWindow     = 24 * time.Hour
)

var severity = map[model.AlertType]int{
	model.AlertError:   0,
	model.AlertWarning: 1,
	model.AlertInfo:    2,
	model.AlertSuccess: 3,
}

// Alerts scans the snapshot for threshold breaches. Ids are stable across
// calls so callers can deduplicate.
func Alerts(s model.Snapshot, now time.Time) []model.AlertItem {
	out := []model.AlertItem{}
	add := func(id string, typ model.AlertType, title, msg, url string) {
		out = append(out, model.AlertItem{ID: id, Type: typ, Title: title, Message: msg, ActionURL: url, CreatedAt: now})
	}

	for _, p := range s.Projects {
		if p.Status != model.ProjectActive {
			continue
		}
		days := daysUntil(p.EndDate, now)
		url := "/projects/" + p.ID
		if days > 0 && days <= deadlineWindowDays {
			add("project-deadline-"+p.ID, model.AlertWarning, "Project Deadline Approaching",
				fmt.Sprintf("%s is due in %d days", p.Title, days), url)
		}
		if days < 0 {
			add("project-overdue-"+p.ID, model.AlertError, "Project Overdue",
				fmt.Sprintf("%s is %d days past its end date", p.Title, -days), url)
		}
		if p.CompletionPercentage < behindSchedulePercent && days <= behindScheduleDays {
			add("project-behind-"+p.ID, model.AlertWarning, "Project Behind Schedule",
				fmt.Sprintf("%s is %.0f%% complete with %d days remaining", p.Title, p.CompletionPercentage, days), url)
		}
	}

	for _, m := range s.Milestones {
		url := "/milestones/" + m.ID
		switch m.Status {
		case model.MilestonePendingReview:
			if m.SubmittedAt == nil {
				continue
			}
			if waited := daysSince(*m.SubmittedAt, now); waited >= reviewStallDays {
				add("milestone-review-"+m.ID, model.AlertWarning, "Milestone Awaiting Review",
					fmt.Sprintf("%s has been awaiting review for %d days", m.Title, waited), url)
			}
		case model.MilestoneInProgress:
			if days := daysUntil(m.DueDate, now); days < 0 {
				add("milestone-overdue-"+m.ID, model.AlertError, "Milestone Overdue",
					fmt.Sprintf("%s is %d days overdue", m.Title, -days), url)
			}
		}
	}

	pending := 0
	for _, a := range s.Applications {
		if a.Status == model.ApplicationPending {
			pending++
		}
	}
	if pending > pendingApplicationCap {
		add("applications-pending", model.AlertInfo, "Pending Applications",
			fmt.Sprintf("You have %d pending job applications to review", pending), "/applications")
	}

	for _, a := range s.Appointments {
		if a.Status != model.AppointmentScheduled {
			continue
		}
		until := a.ScheduledAt.Sub(now)
		if until > 0 && until <= appointmentWindow {
			add("appointment-reminder-"+a.ID, model.AlertInfo, "Upcoming Appointment",
				fmt.Sprintf("%s starts in %d hours", a.Title, int(math.Ceil(until.Hours()))), "/appointments/"+a.ID)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return severity[out[i].Type] < severity[out[j].Type]
	})
	return out
}
