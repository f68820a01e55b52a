// Package report exports a workspace dashboard as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const (
	SheetSummary = "Summary"
	SheetAlerts  = "Alerts"
	SheetActions = "Actions"
)

type Dashboard struct {
	OwnerID     string
	GeneratedAt time.Time
	Stats       model.DashboardStats
	Workflow    model.WorkflowMetrics
	Alerts      []model.AlertItem
	Actions     []model.NextAction
}

// WriteWorkbook renders the dashboard into three sheets and writes the
// XLSX bytes to w.
func WriteWorkbook(w io.Writer, d Dashboard) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetAlerts, SheetActions} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writeRows(f, SheetSummary, header, summaryRows(d)); err != nil {
		return err
	}
	if err := writeRows(f, SheetAlerts, header, alertRows(d.Alerts)); err != nil {
		return err
	}
	if err := writeRows(f, SheetActions, header, actionRows(d.Actions)); err != nil {
		return err
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 32)
	_ = f.SetColWidth(SheetAlerts, "C", "D", 48)
	_ = f.SetColWidth(SheetActions, "B", "C", 48)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
			return fmt.Errorf("%s header style: %w", sheet, err)
		}
	}
	return nil
}

func summaryRows(d Dashboard) [][]any {
	s, wf := d.Stats, d.Workflow
	return [][]any{
		{"Metric", "Value"},
		{"Owner", d.OwnerID},
		{"Generated at", d.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Total projects", s.TotalProjects},
		{"Active projects", s.ActiveProjects},
		{"Completed projects", s.CompletedProjects},
		{"On hold projects", s.OnHoldProjects},
		{"Total budget", s.TotalBudget.StringFixed(2)},
		{"Total spent", s.TotalSpent.StringFixed(2)},
		{"Budget remaining", s.BudgetRemaining.StringFixed(2)},
		{"Completion rate %", s.CompletionRate},
		{"Average project duration (days)", s.AverageProjectDuration},
		{"Average completion %", s.AverageCompletion},
		{"Open jobs", s.OpenJobs},
		{"Pending applications", s.PendingApplications},
		{"Milestones pending review", s.PendingReview},
		{"Overdue milestones", s.OverdueMilestones},
		{"Milestone value", s.MilestoneValue.StringFixed(2)},
		{"Paid milestone value", s.PaidMilestoneValue.StringFixed(2)},
		{"Upcoming appointments", s.UpcomingAppointments},
		{"Open bids", s.OpenBids},
		{"Application acceptance rate %", wf.ApplicationAcceptanceRate},
		{"Bid win rate %", wf.BidWinRate},
		{"Milestone approval rate %", wf.MilestoneApprovalRate},
		{"Average review hours", wf.AverageReviewHours},
		{"Average application response hours", wf.AverageResponseHours},
	}
}

func alertRows(alerts []model.AlertItem) [][]any {
	rows := [][]any{{"Type", "ID", "Title", "Message", "Link"}}
	for _, a := range alerts {
		rows = append(rows, []any{string(a.Type), a.ID, a.Title, a.Message, a.ActionURL})
	}
	return rows
}

func actionRows(actions []model.NextAction) [][]any {
	rows := [][]any{{"Priority", "Title", "Description", "Due", "Link"}}
	for _, a := range actions {
		due := ""
		if a.DueDate != nil {
			due = a.DueDate.UTC().Format("2006-01-02")
		}
		rows = append(rows, []any{string(a.Priority), a.Title, a.Description, due, a.ActionURL})
	}
	return rows
}
