package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/metdatasystem/cwa/internal/textdb"
	"github.com/metdatasystem/cwa/pkg/cwa"
	"github.com/rs/zerolog/log"
)

// All is the file name tag of a report covering every hazard.
const All = "ALL"

// Group is the products of one hazard, oldest first.
type Group struct {
	Hazard   cwa.Hazard
	Products []*textdb.Product
}

// Report is a month of issued products grouped by hazard.
type Report struct {
	Year        int
	Month       time.Month
	Hazard      cwa.Hazard // Empty for every hazard
	Operational bool
	Groups      []Group
}

// Row is one product in the CSV listing.
type Row struct {
	Hazard    string    `csv:"hazard"`
	ProductID string    `csv:"product_id"`
	Series    int       `csv:"series"`
	Issued    time.Time `csv:"issued"`
	Expires   time.Time `csv:"expires"`
	BBB       string    `csv:"bbb,omitempty"`
	Text      string    `csv:"text"`
}

// Build collects the products issued during the month. Only products issued
// in the same mode as the office are included. An empty hazard means all.
func Build(ctx context.Context, store textdb.Store, year int, month time.Month, hazard cwa.Hazard, operational bool) (*Report, error) {
	if hazard != "" && !hazard.Valid() {
		return nil, fmt.Errorf("%w: %q", cwa.ErrUnknownHazard, string(hazard))
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	products, err := store.Issued(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list products for %s: %w", from.Format("Jan 2006"), err)
	}

	byHazard := map[cwa.Hazard][]*textdb.Product{}
	for _, p := range products {
		if p.Operational != operational {
			continue
		}
		if !p.Hazard.Valid() {
			log.Warn().Str("product", p.ProductID).Str("hazard", string(p.Hazard)).Msg("product has unknown hazard, left out of report")
			continue
		}
		byHazard[p.Hazard] = append(byHazard[p.Hazard], p)
	}

	r := &Report{Year: year, Month: month, Hazard: hazard, Operational: operational}
	for _, h := range cwa.Hazards() {
		if hazard != "" && h != hazard {
			continue
		}
		if len(byHazard[h]) > 0 {
			r.Groups = append(r.Groups, Group{Hazard: h, Products: byHazard[h]})
		}
	}
	return r, nil
}

// Len is the number of products in the report.
func (r *Report) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Products)
	}
	return n
}

// FileName is the report's file name, e.g. Mar2025-ALL-CWA.txt.
func (r *Report) FileName() string {
	tag := All
	if r.Hazard != "" {
		tag = string(r.Hazard)
	}
	return fmt.Sprintf("%s%d-%s-CWA.txt", r.Month.String()[:3], r.Year, tag)
}

// WriteText writes each product text followed by a blank line.
func (r *Report) WriteText(w io.Writer) error {
	for _, g := range r.Groups {
		for _, p := range g.Products {
			if _, err := io.WriteString(w, p.Data+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCSV writes a listing of the report with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)
	if err := encoder.EncodeHeader(Row{}); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, g := range r.Groups {
		for _, p := range g.Products {
			row := Row{
				Hazard:    g.Hazard.Name(),
				ProductID: p.AWIPS,
				Series:    p.Series,
				Issued:    p.Issued.UTC(),
				Expires:   p.Expires.UTC(),
				BBB:       p.BBB,
				Text:      p.Data,
			}
			if err := encoder.Encode(row); err != nil {
				return fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save writes the text report into dir under its file name.
func (r *Report) Save(dir string) (string, error) {
	path := filepath.Join(dir, r.FileName())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to save report to file %s: %w", path, err)
	}
	defer file.Close()

	if err := r.WriteText(file); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, file.Close()
}
