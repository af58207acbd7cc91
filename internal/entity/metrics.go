package entity

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Metrics contains the aggregates of one analytics response.
type Metrics struct {
	TotalRevenue      decimal.Decimal
	TotalTransactions int
	AvgQuantity       decimal.Decimal
}

// AvgTicket is revenue per transaction, exactly zero when there are no transactions.
func (m Metrics) AvgTicket() decimal.Decimal {
	if m.TotalTransactions <= 0 {
		return decimal.Zero
	}
	return m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalTransactions)))
}

// PerformanceRow is one point of the revenue by product series.
type PerformanceRow struct {
	Name     string
	Revenue  decimal.Decimal
	Quantity *int
}

// PerformanceRows keeps the order returned by the server.
type PerformanceRows []PerformanceRow

func (rs PerformanceRows) hasQuantity() bool {
	for _, r := range rs {
		if r.Quantity != nil {
			return true
		}
	}
	return false
}

func (rs PerformanceRows) Header() []string {
	if rs.hasQuantity() {
		return []string{"name", "revenue", "quantity"}
	}
	return []string{"name", "revenue"}
}

func (rs PerformanceRows) Records() [][]string {
	withQty := rs.hasQuantity()
	out := make([][]string, 0, len(rs))
	for _, r := range rs {
		rec := []string{r.Name, r.Revenue.String()}
		if withQty {
			qty := ""
			if r.Quantity != nil {
				qty = strconv.Itoa(*r.Quantity)
			}
			rec = append(rec, qty)
		}
		out = append(out, rec)
	}
	return out
}

// Analysis is a single analytics response. Metrics and Performance are
// always committed together.
type Analysis struct {
	Metrics     Metrics
	Performance PerformanceRows
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
