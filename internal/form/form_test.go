package form

import (
	"testing"

	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateProduct(t *testing.T) {
	assert.NoError(t, ValidateProduct(entity.ProductNew{Name: "Mouse", Price: "10.50", CategoryID: 1}))
	assert.NoError(t, ValidateProduct(entity.ProductNew{Name: "Mouse", Price: "10", CategoryID: 1}))

	cases := map[string]entity.ProductNew{
		"empty":        {},
		"bad price":    {Name: "Mouse", Price: "10,50", CategoryID: 1},
		"three digits": {Name: "Mouse", Price: "1.505", CategoryID: 1},
		"no category":  {Name: "Mouse", Price: "1"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateProduct(p)
			assert.ErrorIs(t, err, gerr.ErrValidation)
		})
	}
}

func TestValidateProductReportsEveryField(t *testing.T) {
	err := ValidateProduct(entity.ProductNew{})
	var e *gerr.Error
	if assert.ErrorAs(t, err, &e) {
		assert.Contains(t, e.Detail, "Name")
		assert.Contains(t, e.Detail, "Price")
		assert.Contains(t, e.Detail, "CategoryID")
	}
}

func TestValidateSale(t *testing.T) {
	assert.NoError(t, ValidateSale(entity.SaleNew{ProductID: 1, Quantity: 2}))
	assert.ErrorIs(t, ValidateSale(entity.SaleNew{ProductID: 1}), gerr.ErrValidation)
	assert.ErrorIs(t, ValidateSale(entity.SaleNew{Quantity: 1}), gerr.ErrValidation)
	assert.ErrorIs(t, ValidateSale(entity.SaleNew{ProductID: 1, Quantity: -1}), gerr.ErrValidation)
}

func TestFormatErrMsg(t *testing.T) {
	assert.Equal(t, "Name: cannot be blank.", formatErrMsg("name: cannot be blank. "))
	assert.Equal(t, ".", formatErrMsg(""))
}
