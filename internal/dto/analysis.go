package dto

import (
	"encoding/json"
	"strconv"

	v "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/shopspring/decimal"
)

// Analysis is the body of GET /analysis/.
type Analysis struct {
	Metrics             *AnalysisMetrics  `json:"metrics"`
	ProductsPerformance *[]PerformanceRow `json:"products_performance"`
}

type AnalysisMetrics struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalTransactions int             `json:"total_transactions"`
	AvgQuantity       decimal.Decimal `json:"avg_quantity"`
}

type PerformanceRow struct {
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity *int            `json:"quantity,omitempty"`
}

func (a *Analysis) Validate() error {
	return v.ValidateStruct(a,
		v.Field(&a.Metrics, v.NotNil),
		v.Field(&a.ProductsPerformance, v.NotNil),
	)
}

func (m *AnalysisMetrics) Validate() error {
	return v.ValidateStruct(m,
		v.Field(&m.TotalTransactions, v.Min(0)),
	)
}

func (r PerformanceRow) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.Name, v.Required),
		v.Field(&r.Quantity, v.Min(0)),
	)
}

// DecodeAnalysis parses and validates an analytics body. Any shape mismatch
// is a format failure.
func DecodeAnalysis(body []byte) (*entity.Analysis, error) {
	a := &Analysis{}
	if err := json.Unmarshal(body, a); err != nil {
		return nil, gerr.Format("decode analysis", err.Error())
	}
	if err := a.Validate(); err != nil {
		return nil, gerr.Format("decode analysis", err.Error())
	}
	return ConvertAnalysisToEntity(a), nil
}

func ConvertAnalysisToEntity(a *Analysis) *entity.Analysis {
	out := &entity.Analysis{
		Metrics: entity.Metrics{
			TotalRevenue:      a.Metrics.TotalRevenue,
			TotalTransactions: a.Metrics.TotalTransactions,
			AvgQuantity:       a.Metrics.AvgQuantity,
		},
		Performance: make(entity.PerformanceRows, 0, len(*a.ProductsPerformance)),
	}
	for _, r := range *a.ProductsPerformance {
		out.Performance = append(out.Performance, entity.PerformanceRow{
			Name:     r.Name,
			Revenue:  r.Revenue,
			Quantity: r.Quantity,
		})
	}
	return out
}

// FilterQuery renders the query string of the analytics request.
// Unconstrained fields are omitted.
func FilterQuery(f entity.FilterParams) map[string]string {
	q := map[string]string{}
	if !f.StartDate.IsZero() {
		q["start_date"] = f.StartDate.Format(entity.DateLayout)
	}
	if !f.EndDate.IsZero() {
		q["end_date"] = f.EndDate.Format(entity.DateLayout)
	}
	if f.CategoryID != 0 {
		q["category"] = strconv.Itoa(f.CategoryID)
	}
	return q
}
