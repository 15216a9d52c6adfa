package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/spf13/cobra"
)

var (
	productFile string
	sendPIL     string
	sendHazard  string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send reviewed product text",
	Long: `Store a reviewed product in the text database and, for an operational office, distribute it.
	Series and expiration are read back from the product's valid line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hazard, err := cwa.ParseHazard(sendHazard)
		if err != nil {
			return fmt.Errorf("invalid --hazard %q: %w", sendHazard, err)
		}

		text, err := readText(productFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		result := resultFromText(a.cfg.Office(), sendPIL, text, time.Now().UTC())
		return send(ctx, cmd.ErrOrStderr(), a, sendPIL, hazard, result)
	},
}

func init() {
	sendCmd.Flags().StringVarP(&productFile, "file", "f", "-", "Product text file, - for stdin.")
	sendCmd.Flags().StringVar(&sendPIL, "pil", "", "Product identifier, e.g. CWAAB1.")
	sendCmd.Flags().StringVar(&sendHazard, "hazard", string(cwa.HazardCanMan), "Hazard the product describes.")
	sendCmd.MarkFlagRequired("pil")
}

func readText(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read product text: %w", err)
	}
	return string(data), nil
}

// resultFromText recovers the numbering and valid period of reviewed text.
func resultFromText(office cwa.Office, pil, text string, now time.Time) *cwa.Result {
	start := now.Truncate(time.Minute)
	fields := cwa.ParsePrior(text, office.CWSU, start)

	result := &cwa.Result{
		ProductID: office.RetrievalID(pil),
		Text:      text,
		Start:     start,
		End:       cwa.DefaultEnd(start),
	}
	if n, ok := fields.Number(); ok {
		result.SeriesID = n
		result.Issuance = cwa.Issuance{Number: n % 100}
	}
	if expires, ok := fields.Expires(); ok {
		result.End = cwa.ResolveEnd(start, expires)
	}
	if strings.TrimSpace(text) == "" {
		result.Text = ""
	}
	return result
}
