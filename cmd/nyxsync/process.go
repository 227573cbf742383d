package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one batch over the sync queue",
	Long: `Claim and process pending sync jobs one at a time.

A suspend signal from the hub halts the batch and returns the current job
to the queue; any other failure drops the job and the batch continues.

Example usage:
  nyxsync process             # drain the whole queue
  nyxsync process --limit=10  # process at most 10 jobs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		pending, err := a.queue.Size(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Processing queue: %d jobs pending\n", pending)

		summary, err := a.batch.ProcessBatch(ctx, limit)
		if err != nil {
			return err
		}

		fmt.Println()
		if summary.Suspended {
			fmt.Println("Batch suspended by the hub; remaining jobs left in the queue.")
		} else {
			fmt.Println("Batch complete:")
		}
		fmt.Printf("  - Processed: %d\n", summary.Processed)
		fmt.Printf("  - Errors:    %d\n", summary.Errors)
		fmt.Printf("  - Remaining: %d\n", summary.Remaining)
		return nil
	},
}

func init() {
	processCmd.Flags().Int("limit", 0, "maximum number of jobs to process (0 = all)")
}
