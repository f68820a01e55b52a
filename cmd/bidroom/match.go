package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wilsonhazen/bidroom/internal/matching"
	"github.com/wilsonhazen/bidroom/internal/model"
)

type matchInput struct {
	Job         model.Job          `json:"job"`
	Contractors []model.Contractor `json:"contractors"`
	Limit       int                `json:"limit"`
}

type matchOutput struct {
	JobID   string        `json:"job_id,omitempty"`
	Matches []model.Match `json:"matches"`
}

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank contractors for a job",
		Long: `Rank contractors for a job. The input file holds {"job": ..., "contractors": [...], "limit": n}.

Examples:
  bidroom match --file match.json
  bidroom match --file match.json --seed 42 --limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			format, _ := cmd.Flags().GetString("output")
			seed, _ := cmd.Flags().GetInt64("seed")
			limit, _ := cmd.Flags().GetInt("limit")

			var in matchInput
			if err := decodeInput(cmd.InOrStdin(), file, &in); err != nil {
				return err
			}
			if strings.TrimSpace(in.Job.Trade) == "" {
				return fmt.Errorf("job.trade is required")
			}
			if cmd.Flags().Changed("limit") {
				in.Limit = limit
			}

			m := matching.New()
			if cmd.Flags().Changed("seed") {
				m = matching.NewWithSource(rand.NewSource(seed))
			}
			return writeOutput(cmd.OutOrStdout(), format, matchOutput{
				JobID:   in.Job.ID,
				Matches: m.Match(in.Job, in.Contractors, in.Limit),
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "match input JSON file, or - for stdin")
	cmd.Flags().Int64("seed", 0, "fix the tie-break jitter for reproducible output")
	cmd.Flags().Int("limit", 0, "maximum matches (overrides the file)")
	cmd.Flags().StringP("output", "o", formatJSON, "output format: json or yaml")
	return cmd
}
