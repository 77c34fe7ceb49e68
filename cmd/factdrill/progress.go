package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print a learner's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		learnerID, _ := cmd.Flags().GetInt64("learner")
		threshold, _ := cmd.Flags().GetInt("threshold")
		verbose, _ := cmd.Flags().GetBool("facts")

		cfg, log, a, err := bootstrap(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		defer a.Close()

		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.Mastery.DefaultThreshold
		}

		summary, err := a.Reporter.Summary(cmd.Context(), learnerID, threshold)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "learner %d: %d attempts, %d correct, %d mastered (threshold %d)\n",
			learnerID, summary.TotalAttempts, summary.TotalCorrect, summary.MasteredCount, threshold)

		if !verbose {
			return nil
		}

		records, err := a.Reporter.Facts(cmd.Context(), learnerID)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FACT\tATTEMPTS\tCORRECT\tMASTERED")
		for _, r := range records {
			fmt.Fprintf(tw, "%d x %d\t%d\t%d\t%t\n",
				r.Multiplicand, r.Multiplier, r.Attempts, r.Correct, r.IsMastered(threshold))
		}
		return tw.Flush()
	},
}

func init() {
	progressCmd.Flags().Int64("learner", entities.DefaultLearnerID, "Learner id")
	progressCmd.Flags().Int("threshold", entities.DefaultMasteryThreshold, "Correct answers needed for mastery")
	progressCmd.Flags().Bool("facts", false, "Also list per-fact records")
}
