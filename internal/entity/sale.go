package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          int
	ProductID   int
	ProductName string
	Quantity    int
	TotalPrice  decimal.Decimal
	// Date is zero when the server sent a value that could not be parsed.
	Date time.Time
}

func (s Sale) Key() int { return s.ID }

// SaleNew is the body of sale create and update.
type SaleNew struct {
	ProductID int
	Quantity  int
}

type Sales []Sale

func (ss Sales) Header() []string {
	return []string{"id", "product", "quantity", "total_price", "date"}
}

func (ss Sales) Records() [][]string {
	out := make([][]string, 0, len(ss))
	for _, s := range ss {
		date := ""
		if !s.Date.IsZero() {
			date = s.Date.Format(time.RFC3339)
		}
		out = append(out, []string{itoa(s.ID), s.ProductName, itoa(s.Quantity), s.TotalPrice.StringFixed(2), date})
	}
	return out
}

// ImportAck is the acknowledgement of a bulk CSV import.
type ImportAck struct {
	StatusCode int
	Message    string
}
