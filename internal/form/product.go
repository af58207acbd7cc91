package form

import (
	"regexp"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/store-console/internal/entity"
)

var priceRegex = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

type ProductRequest struct {
	*entity.ProductNew
}

func (f *ProductRequest) Validate() error {
	return ValidateStruct(f,
		v.Field(&f.Name, v.Required, v.Length(1, 255)),
		v.Field(&f.Price, v.Required, v.Match(priceRegex)),
		v.Field(&f.CategoryID, v.Required, v.Min(1)),
	)
}

func ValidateProduct(p entity.ProductNew) error {
	return (&ProductRequest{&p}).Validate()
}
