package textdb

import (
	"fmt"
	"time"

	"github.com/metdatasystem/cwa/pkg/cwa"
)

// Product is a CWA, CWS or MIS as stored in the text database.
type Product struct {
	ID          int        `json:"id"`
	ProductID   string     `json:"product_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Issued      time.Time  `json:"issued"`  // Start of the valid period
	Expires     time.Time  `json:"expires"` // End of the valid period
	Source      string     `json:"source"`  // Issuing CWSU
	Data        string     `json:"data"`    // Text of the product
	WMO         string     `json:"wmo"`
	AWIPS       string     `json:"awips"`       // Retrieval identifier, e.g. ABQCWA1
	TransmitID  string     `json:"transmit_id"` // Identifier the product was sent under
	BBB         string     `json:"bbb"`
	Hazard      cwa.Hazard `json:"hazard"`
	Series      int        `json:"series"`
	Operational bool       `json:"operational"`
}

// GenerateProductID builds a unique product key from the issuance time, office,
// WMO datatype and AWIPS identifier. An empty BBB can be given when not applicable.
func GenerateProductID(issued time.Time, office string, wmoDatatype string, awips string, bbb string) string {
	id := fmt.Sprintf("%s-%s-%s-%s", issued.UTC().Format("200601021504"), office, wmoDatatype, awips)

	if len(bbb) > 0 {
		id += "-" + bbb
	}

	return id
}

// NewProduct prepares a composed result for storage. The WMO heading is read
// back from the text so the stored fields always match what was sent.
func NewProduct(office cwa.Office, pil string, hazard cwa.Hazard, result *cwa.Result) (*Product, error) {
	wmo, err := cwa.ParseWMO(result.Text)
	if err != nil {
		return nil, fmt.Errorf("could not read product heading: %w", err)
	}

	product := &Product{
		Issued:      result.Start,
		Expires:     result.End,
		Source:      office.CWSU,
		Data:        result.Text,
		WMO:         wmo.Datatype,
		AWIPS:       office.RetrievalID(pil),
		TransmitID:  office.TransmitID(pil),
		BBB:         wmo.BBB,
		Hazard:      hazard,
		Series:      result.SeriesID,
		Operational: office.Operational,
	}
	product.ProductID = GenerateProductID(product.Issued, wmo.Office, wmo.Datatype, product.TransmitID, product.BBB)

	return product, nil
}

// Prior converts the stored product into the form the composer numbers against.
func (p *Product) Prior() *cwa.Prior {
	if p == nil {
		return nil
	}
	inserted := p.Issued
	if p.CreatedAt != nil {
		inserted = *p.CreatedAt
	}
	return &cwa.Prior{
		ProductID: p.AWIPS,
		Text:      p.Data,
		Inserted:  inserted,
		Reference: p.Issued,
	}
}
