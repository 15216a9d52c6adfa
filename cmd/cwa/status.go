package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/spf13/cobra"
)

var (
	activeColor   = color.New(color.FgGreen)
	expiringColor = color.New(color.FgYellow)
	expiredColor  = color.New(color.FgRed)
	inactiveColor = color.New(color.FgHiBlack)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest product under each identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		statuses, err := a.service.Status(ctx)
		if err != nil {
			return err
		}
		writeStatus(cmd.OutOrStdout(), statuses)
		return nil
	},
}

func expiryColor(e cwa.Expiry) *color.Color {
	switch e {
	case cwa.ExpiryActive:
		return activeColor
	case cwa.ExpiryExpiring:
		return expiringColor
	case cwa.ExpiryExpired:
		return expiredColor
	}
	return inactiveColor
}

// writeStatus prints one line per product: identifier, series, expiration and
// expiry state.
func writeStatus(w io.Writer, statuses []cwa.Status) {
	fmt.Fprintf(w, "%-12s %-6s %-8s %s\n", "PRODUCT", "SERIES", "EXPIRE", "STATUS")
	for _, s := range statuses {
		line := fmt.Sprintf("%-12s %-6s %-8s %s", s.ProductID, s.Series, s.Expire, s.Expiry)
		expiryColor(s.Expiry).Fprintln(w, line)
	}
}
