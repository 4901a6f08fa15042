package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ta, rebalance, plan",
	Long: `Run the decision pipeline end to end against the data area:
compute indicators, generate ranked recommendations, and build the
trade plan. Use 'execute' afterwards to dry-run the plan and 'analyze'
for ledger PnL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runTA(cmd, args); err != nil {
			return err
		}
		if err := runRebalance(cmd, args); err != nil {
			return err
		}
		return runPlan(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
