package dto

import (
	"time"

	"github.com/jekabolt/store-console/internal/entity"
	"github.com/shopspring/decimal"
)

var saleDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	entity.DateLayout,
}

type Sale struct {
	ID          int             `json:"id"`
	Product     int             `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Date        string          `json:"date"`
	Month       string          `json:"month"`
}

// SaleWrite is the body of POST /sales/ and PUT /sales/{id}/.
type SaleWrite struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

// ParseSaleDate returns the zero time for values it can't read.
func ParseSaleDate(s string) time.Time {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func ConvertSaleToEntity(s Sale) entity.Sale {
	date := s.Date
	if date == "" {
		date = s.Month
	}
	return entity.Sale{
		ID:          s.ID,
		ProductID:   s.Product,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		TotalPrice:  s.TotalPrice,
		Date:        ParseSaleDate(date),
	}
}

func ConvertSalesToEntity(ss []Sale) []entity.Sale {
	out := make([]entity.Sale, 0, len(ss))
	for _, s := range ss {
		out = append(out, ConvertSaleToEntity(s))
	}
	return out
}

func ConvertEntitySaleNewToWrite(s entity.SaleNew) SaleWrite {
	return SaleWrite{Product: s.ProductID, Quantity: s.Quantity}
}
