package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/spf13/cobra"
)

var (
	selectionFile string
	sendAfter     bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Compose a product from a selection file",
	Long: `Compose a CWA, CWS or MIS from a YAML selection file and print it for review.
	The product is numbered against the latest one stored under the same identifier.
	With --send the product is stored and, for an operational office, distributed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sel, err := readSelection(selectionFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.service.Create(ctx, sel)
		if cwa.IsValidation(err) {
			printValidation(cmd.ErrOrStderr(), err)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), result.Text)
		if sendAfter {
			return send(ctx, cmd.ErrOrStderr(), a, sel.ProductID, sel.Hazard, result)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&selectionFile, "file", "f", "-", "Selection YAML file, - for stdin.")
	createCmd.Flags().BoolVar(&sendAfter, "send", false, "Store and distribute the product once composed.")
}

func readSelection(path string, stdin io.Reader) (cwa.Selection, error) {
	if path == "-" {
		return cwa.DecodeSelection(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return cwa.Selection{}, fmt.Errorf("failed to open selection file: %w", err)
	}
	defer file.Close()
	return cwa.DecodeSelection(file)
}

func printValidation(w io.Writer, err error) {
	color.New(color.FgRed).Fprintln(w, err.Error())
}

func send(ctx context.Context, w io.Writer, a *app, pil string, hazard cwa.Hazard, result *cwa.Result) error {
	product, err := a.service.Send(ctx, pil, hazard, result)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "Sent %s series %d\n", product.TransmitID, product.Series)
	return nil
}
