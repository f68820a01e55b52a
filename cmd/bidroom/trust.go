package main

import (
	"github.com/spf13/cobra"

	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/trust"
)

func newTrustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Score a contractor profile",
		Long: `Score a contractor profile read from a JSON file.

Examples:
  bidroom trust --file contractor.json
  cat contractor.json | bidroom trust --file - --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			format, _ := cmd.Flags().GetString("output")

			var c model.Contractor
			if err := decodeInput(cmd.InOrStdin(), file, &c); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, trust.Report(c))
		},
	}
	cmd.Flags().StringP("file", "f", "", "contractor JSON file, or - for stdin")
	cmd.Flags().StringP("output", "o", formatJSON, "output format: json or yaml")
	return cmd
}
