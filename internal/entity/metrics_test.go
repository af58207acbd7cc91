package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAvgTicket(t *testing.T) {
	m := Metrics{TotalRevenue: decimal.NewFromInt(300), TotalTransactions: 4}
	assert.True(t, decimal.NewFromInt(75).Equal(m.AvgTicket()))

	m = Metrics{TotalRevenue: decimal.NewFromInt(300)}
	assert.True(t, m.AvgTicket().IsZero())
	assert.Equal(t, "0", m.AvgTicket().String())
}

func TestPerformanceRowsColumns(t *testing.T) {
	rows := PerformanceRows{
		{Name: "Widget", Revenue: decimal.NewFromInt(10)},
		{Name: "Gadget", Revenue: decimal.RequireFromString("2.5")},
	}
	assert.Equal(t, []string{"name", "revenue"}, rows.Header())
	assert.Equal(t, [][]string{{"Widget", "10"}, {"Gadget", "2.5"}}, rows.Records())

	qty := 3
	rows[1].Quantity = &qty
	assert.Equal(t, []string{"name", "revenue", "quantity"}, rows.Header())
	assert.Equal(t, [][]string{{"Widget", "10", ""}, {"Gadget", "2.5", "3"}}, rows.Records())
}

func TestFilterParams(t *testing.T) {
	var f FilterParams
	assert.True(t, f.IsEmpty())
	assert.Equal(t, "start=any end=any category=any", f.String())

	f.StartDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	f.EndDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.CategoryID = 2
	assert.False(t, f.IsEmpty())
	assert.True(t, f.HasInvertedRange())
	assert.Equal(t, "start=2024-03-10 end=2024-03-01 category=2", f.String())
}
