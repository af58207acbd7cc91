package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/internal/filter"
)

// FilterRequest changes some filter fields. An absent field is left as is,
// an empty date or a zero category clears the field.
type FilterRequest struct {
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CategoryID *int    `json:"category"`
}

func (fr *FilterRequest) Bind(r *http.Request) error {
	return v.ValidateStruct(fr,
		v.Field(&fr.StartDate, v.Date(entity.DateLayout)),
		v.Field(&fr.EndDate, v.Date(entity.DateLayout)),
		v.Field(&fr.CategoryID, v.Min(0)),
	)
}

func (fr *FilterRequest) Patch() (filter.Patch, error) {
	var p filter.Patch
	var err error
	if p.StartDate, err = parseDate(fr.StartDate); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDate(fr.EndDate); err != nil {
		return p, err
	}
	p.CategoryID = fr.CategoryID
	return p, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &time.Time{}, nil
	}
	t, err := time.Parse(entity.DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// amount accepts a JSON string or number.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("price must be a string or a number")
	}
	*a = amount(n.String())
	return nil
}

type ProductRequest struct {
	Name       string `json:"name"`
	Price      amount `json:"price"`
	CategoryID int    `json:"category"`
}

// Bind only decodes; field rules are checked by the product coordinator.
func (pr *ProductRequest) Bind(r *http.Request) error {
	return nil
}

func (pr *ProductRequest) ProductNew() entity.ProductNew {
	return entity.ProductNew{
		Name:       pr.Name,
		Price:      string(pr.Price),
		CategoryID: pr.CategoryID,
	}
}

type SaleRequest struct {
	ProductID int `json:"product"`
	Quantity  int `json:"quantity"`
}

func (sr *SaleRequest) Bind(r *http.Request) error {
	return nil
}

func (sr *SaleRequest) SaleNew() entity.SaleNew {
	return entity.SaleNew{ProductID: sr.ProductID, Quantity: sr.Quantity}
}

func idParam(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}
