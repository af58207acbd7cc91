package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/jekabolt/store-console/internal/csvimport"
	"github.com/jekabolt/store-console/internal/dashboard"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/shopspring/decimal"
)

// errors

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	Kind       string `json:"kind,omitempty"`  // failure category
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrFailure maps a classified failure to its status code.
func ErrFailure(err error) render.Renderer {
	code := http.StatusInternalServerError
	kind := gerr.KindOf(err)
	switch {
	case errors.Is(err, gerr.ErrNotConfirmed):
		code = http.StatusPreconditionRequired
	case errors.Is(err, gerr.ErrBusy):
		code = http.StatusConflict
	case kind == gerr.KindValidation, kind == gerr.KindFormat:
		code = http.StatusUnprocessableEntity
	case kind == gerr.KindEmptyData:
		code = http.StatusConflict
	case kind == gerr.KindNetwork, kind == gerr.KindServer, kind == gerr.KindPartial:
		code = http.StatusBadGateway
	}
	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     http.StatusText(code),
		ErrorText:      err.Error(),
	}
	if kind != gerr.KindUnknown {
		resp.Kind = kind.String()
	}
	return resp
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// dashboard

type FilterResponse struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CategoryID int    `json:"category"`
}

func newFilterResponse(f entity.FilterParams) FilterResponse {
	fr := FilterResponse{CategoryID: f.CategoryID}
	if !f.StartDate.IsZero() {
		fr.StartDate = f.StartDate.Format(entity.DateLayout)
	}
	if !f.EndDate.IsZero() {
		fr.EndDate = f.EndDate.Format(entity.DateLayout)
	}
	return fr
}

type MetricsResponse struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay string          `json:"total_revenue_display"`
	TotalTransactions   int             `json:"total_transactions"`
	AvgQuantity         decimal.Decimal `json:"avg_quantity"`
	AvgTicket           decimal.Decimal `json:"avg_ticket"`
	AvgTicketDisplay    string          `json:"avg_ticket_display"`
}

type PerformanceRowResponse struct {
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity *int            `json:"quantity,omitempty"`
}

type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DashboardResponse struct {
	Status              string                   `json:"status"`
	Filter              FilterResponse           `json:"filter"`
	Draft               FilterResponse           `json:"draft"`
	Metrics             MetricsResponse          `json:"metrics"`
	ProductsPerformance []PerformanceRowResponse `json:"products_performance"`
	Error               string                   `json:"error,omitempty"`
	ErrorKind           string                   `json:"error_kind,omitempty"`
	Categories          []CategoryResponse       `json:"categories"`
	CategoriesError     string                   `json:"categories_error,omitempty"`
	UpdatedAt           *time.Time               `json:"updated_at,omitempty"`
}

func (rd *DashboardResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewDashboardResponse(s dashboard.Snapshot, draft entity.FilterParams, f *format.Formatter) *DashboardResponse {
	m := s.Metrics()
	resp := &DashboardResponse{
		Status: s.Status.String(),
		Filter: newFilterResponse(s.Filter),
		Draft:  newFilterResponse(draft),
		Metrics: MetricsResponse{
			TotalRevenue:        m.TotalRevenue,
			TotalRevenueDisplay: f.Money(m.TotalRevenue),
			TotalTransactions:   m.TotalTransactions,
			AvgQuantity:         m.AvgQuantity,
			AvgTicket:           m.AvgTicket(),
			AvgTicketDisplay:    f.Money(m.AvgTicket()),
		},
		ProductsPerformance: []PerformanceRowResponse{},
		Categories:          []CategoryResponse{},
	}
	for _, row := range s.Performance() {
		resp.ProductsPerformance = append(resp.ProductsPerformance, PerformanceRowResponse{
			Name:     row.Name,
			Revenue:  row.Revenue,
			Quantity: row.Quantity,
		})
	}
	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
		resp.ErrorKind = gerr.KindOf(s.Err).String()
	}
	if s.CategoriesErr != nil {
		resp.CategoriesError = s.CategoriesErr.Error()
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// products

type ProductResponse struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	CategoryID   int             `json:"category"`
	CategoryName string          `json:"category_name"`
}

func (rd *ProductResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewProductResponse(p entity.Product, f *format.Formatter) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: f.Money(p.Price),
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

func NewProductListResponse(ps []entity.Product, f *format.Formatter) []render.Renderer {
	list := []render.Renderer{}
	for _, p := range ps {
		list = append(list, NewProductResponse(p, f))
	}
	return list
}

// sales

type SaleResponse struct {
	ID                int             `json:"id"`
	ProductID         int             `json:"product"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	TotalPriceDisplay string          `json:"total_price_display"`
	Date              *time.Time      `json:"date"`
	DateDisplay       string          `json:"date_display"`
}

func (rd *SaleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewSaleResponse(s entity.Sale, f *format.Formatter) *SaleResponse {
	resp := &SaleResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		ProductName:       s.ProductName,
		Quantity:          s.Quantity,
		TotalPrice:        s.TotalPrice,
		TotalPriceDisplay: f.Money(s.TotalPrice),
		DateDisplay:       f.Date(s.Date),
	}
	if !s.Date.IsZero() {
		d := s.Date
		resp.Date = &d
	}
	return resp
}

func NewSaleListResponse(ss []entity.Sale, f *format.Formatter) []render.Renderer {
	list := []render.Renderer{}
	for _, s := range ss {
		list = append(list, NewSaleResponse(s, f))
	}
	return list
}

// import

type ImportResponse struct {
	Status          string `json:"status"`
	FileName        string `json:"file_name,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
	InputGeneration uint64 `json:"input_generation"`
}

func (rd *ImportResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewImportResponse(s csvimport.State) *ImportResponse {
	resp := &ImportResponse{
		Status:          s.Status.String(),
		FileName:        s.FileName,
		InputGeneration: s.InputGeneration,
	}
	if s.Ack != nil {
		resp.Message = s.Ack.Message
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	return resp
}

// notifications

type NotificationResponse struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func (rd *NotificationResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewNotificationListResponse(ns []entity.Notification) []render.Renderer {
	list := []render.Renderer{}
	for _, n := range ns {
		list = append(list, &NotificationResponse{ID: n.ID, Level: string(n.Level), Message: n.Message, At: n.At})
	}
	return list
}
