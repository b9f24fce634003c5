package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/uninorte/lead-system/internal/core/domain"
)

// utf8BOM lets spreadsheet tools detect the encoding of accented names.
const utf8BOM = "\ufeff"

// CSVEncoder writes leads as UTF-8 csv with a byte order mark.
type CSVEncoder struct{}

func NewCSVEncoder() CSVEncoder { return CSVEncoder{} }

func (CSVEncoder) EncodeLeads(w io.Writer, leads []*domain.Lead) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(leadHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, l := range leads {
		if err := cw.Write(leadRow(l)); err != nil {
			return fmt.Errorf("write lead %s: %w", l.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
