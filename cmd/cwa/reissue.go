package main

import (
	"fmt"
	"time"

	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/spf13/cobra"
)

var (
	reissueStart string
	reissueEnd   string
	reissueCor   bool
	reissueSend  bool
)

var reissueCmd = &cobra.Command{
	Use:   "reissue <pil>",
	Short: "Reissue the latest product with new times",
	Long: `Rebuild the latest stored product under <pil> with a new start and end time, keeping its
	series and hazard text. Times are ddHHmm in UTC.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pil := args[0]

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		now := time.Now().UTC()
		start, err := parseFlagTime(reissueStart, now)
		if err != nil {
			return err
		}
		end, err := parseFlagTime(reissueEnd, now)
		if err != nil {
			return err
		}

		result, err := a.service.Reissue(ctx, pil, start, end, reissueCor)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), result.Text)

		if reissueSend {
			latest, err := a.service.Latest(ctx, pil)
			if err != nil {
				return err
			}
			return send(ctx, cmd.ErrOrStderr(), a, pil, latest.Hazard, result)
		}
		return nil
	},
}

func init() {
	reissueCmd.Flags().StringVar(&reissueStart, "start", "", "Start time as ddHHmm, now when empty.")
	reissueCmd.Flags().StringVar(&reissueEnd, "end", "", "End time as ddHHmm, top of the next hour when empty.")
	reissueCmd.Flags().BoolVar(&reissueCor, "cor", false, "Mark the product as a correction.")
	reissueCmd.Flags().BoolVar(&reissueSend, "send", false, "Store and distribute the reissued product.")
}

// parseFlagTime reads a ddHHmm flag on the current month. Empty means zero.
func parseFlagTime(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := cwa.ParseDDHHMM(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t, nil
}
