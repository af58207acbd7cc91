// Package csvexport encodes in-memory tables as RFC 4180 CSV.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	gerr "github.com/jekabolt/store-console/internal/errors"
)

// Table is an ordered set of records with a header. Every record has one
// value per header column.
type Table interface {
	Header() []string
	Records() [][]string
}

// Encode writes the header line and one line per record. Fields with a
// comma, quote or line break are quoted and inner quotes are doubled.
// An empty table is refused.
func Encode(t Table) ([]byte, error) {
	records := t.Records()
	if len(records) == 0 {
		return nil, &gerr.Error{Kind: gerr.KindEmptyData, Op: "export csv", Detail: "there is no data to export"}
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.Write(t.Header()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv records: %w", err)
	}
	return buffer.Bytes(), nil
}

func ToCSV(t Table) (string, error) {
	b, err := Encode(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
