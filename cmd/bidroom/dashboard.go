package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wilsonhazen/bidroom/internal/dashboard"
	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/report"
)

type dashboardOutput struct {
	OwnerID     string                `json:"owner_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Stats       model.DashboardStats  `json:"stats"`
	Workflow    model.WorkflowMetrics `json:"workflow"`
	Alerts      []model.AlertItem     `json:"alerts"`
	Actions     []model.NextAction    `json:"actions"`
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Compute stats, alerts and next actions for a workspace snapshot",
		Long: `Compute stats, alerts and next actions for a workspace snapshot.

Examples:
  bidroom dashboard --file snapshot.json --role "Project Manager"
  bidroom dashboard --file snapshot.json --role Subcontractor --user usr_42 --xlsx out.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			role, _ := cmd.Flags().GetString("role")
			userID, _ := cmd.Flags().GetString("user")
			format, _ := cmd.Flags().GetString("output")
			xlsxPath, _ := cmd.Flags().GetString("xlsx")
			at, _ := cmd.Flags().GetString("now")

			now := time.Now().UTC()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				now = t
			}

			var snap model.Snapshot
			if err := decodeInput(cmd.InOrStdin(), file, &snap); err != nil {
				return err
			}

			d := report.Dashboard{
				OwnerID:     snap.OwnerID,
				GeneratedAt: now,
				Stats:       dashboard.Stats(snap, now),
				Workflow:    dashboard.Workflow(snap),
				Alerts:      dashboard.Alerts(snap, now),
				Actions:     dashboard.NextActions(snap, model.Role(role), userID, now),
			}

			if xlsxPath != "" {
				var buf bytes.Buffer
				if err := report.WriteWorkbook(&buf, d); err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", xlsxPath, err)
				}
			}

			return writeOutput(cmd.OutOrStdout(), format, dashboardOutput{
				OwnerID:     d.OwnerID,
				GeneratedAt: d.GeneratedAt,
				Stats:       d.Stats,
				Workflow:    d.Workflow,
				Alerts:      d.Alerts,
				Actions:     d.Actions,
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "snapshot JSON file, or - for stdin")
	cmd.Flags().String("role", "", "viewer role for next actions")
	cmd.Flags().String("user", "", "viewer user id for assigned work")
	cmd.Flags().String("now", "", "evaluate at this RFC3339 time instead of the clock")
	cmd.Flags().String("xlsx", "", "also write an XLSX report to this path")
	cmd.Flags().StringP("output", "o", formatJSON, "output format: json or yaml")
	return cmd
}
