package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/store-console/internal/entity"
)

type SaleRequest struct {
	*entity.SaleNew
}

func (f *SaleRequest) Validate() error {
	return ValidateStruct(f,
		v.Field(&f.ProductID, v.Required, v.Min(1)),
		v.Field(&f.Quantity, v.Required, v.Min(1)),
	)
}

func ValidateSale(s entity.SaleNew) error {
	return (&SaleRequest{&s}).Validate()
}
