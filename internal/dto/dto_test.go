package dto

import (
	"testing"
	"time"

	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnalysis(t *testing.T) {
	body := []byte(`{
		"metrics": {"total_revenue": "1500.50", "total_transactions": 3, "avg_quantity": 2.5},
		"products_performance": [
			{"name": "Notebook", "revenue": 1000.5},
			{"name": "Mouse", "revenue": 500, "quantity": 4}
		]
	}`)

	a, err := DecodeAnalysis(body)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(a.Metrics.TotalRevenue))
	assert.Equal(t, 3, a.Metrics.TotalTransactions)
	assert.True(t, decimal.RequireFromString("2.5").Equal(a.Metrics.AvgQuantity))
	require.Len(t, a.Performance, 2)
	assert.Equal(t, "Notebook", a.Performance[0].Name)
	assert.Nil(t, a.Performance[0].Quantity)
	require.NotNil(t, a.Performance[1].Quantity)
	assert.Equal(t, 4, *a.Performance[1].Quantity)
}

func TestDecodeAnalysisEmptySeries(t *testing.T) {
	a, err := DecodeAnalysis([]byte(`{"metrics": {"total_revenue": 0, "total_transactions": 0, "avg_quantity": null}, "products_performance": []}`))
	require.NoError(t, err)
	assert.Empty(t, a.Performance)
	assert.True(t, a.Metrics.AvgTicket().IsZero())
}

func TestDecodeAnalysisMalformed(t *testing.T) {
	cases := map[string]string{
		"missing performance": `{"metrics": {"total_revenue": 1, "total_transactions": 1}}`,
		"missing metrics":     `{"products_performance": []}`,
		"not json":            `<html>502</html>`,
		"wrong type":          `{"metrics": [], "products_performance": []}`,
		"negative count":      `{"metrics": {"total_transactions": -1}, "products_performance": []}`,
		"unnamed row":         `{"metrics": {}, "products_performance": [{"revenue": 1}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAnalysis([]byte(body))
			require.Error(t, err)
			assert.ErrorIs(t, err, gerr.ErrFormat)
		})
	}
}

func TestFilterQuery(t *testing.T) {
	assert.Empty(t, FilterQuery(entity.FilterParams{}))

	q := FilterQuery(entity.FilterParams{
		StartDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: 7,
	})
	assert.Equal(t, map[string]string{
		"start_date": "2024-05-01",
		"end_date":   "2024-04-01",
		"category":   "7",
	}, q)
}

func TestConvertSale(t *testing.T) {
	s := ConvertSaleToEntity(Sale{ID: 1, Product: 2, ProductName: "Mouse", Quantity: 3, Date: "2024-02-03T10:11:12Z"})
	assert.Equal(t, time.Date(2024, 2, 3, 10, 11, 12, 0, time.UTC), s.Date)

	s = ConvertSaleToEntity(Sale{Month: "2024-02-03"})
	assert.Equal(t, 2024, s.Date.Year())

	s = ConvertSaleToEntity(Sale{Date: "someday"})
	assert.True(t, s.Date.IsZero())
}

func TestConvertEntityProductNewToWrite(t *testing.T) {
	w := ConvertEntityProductNewToWrite(entity.ProductNew{Name: "Mouse", Price: "12.5", CategoryID: 1})
	assert.Equal(t, ProductWrite{Name: "Mouse", Price: "12.50", Category: 1}, w)
}
