package dto

import (
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     int             `json:"category"`
	CategoryName string          `json:"category_name"`
}

// ProductWrite is the body of POST /products/ and PUT /products/{id}/.
type ProductWrite struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category int    `json:"category"`
}

func ConvertCategoriesToEntity(cs []Category) []entity.Category {
	out := make([]entity.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, entity.Category{ID: c.ID, Name: c.Name})
	}
	return out
}

func ConvertProductToEntity(p Product) entity.Product {
	return entity.Product{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		CategoryID:   p.Category,
		CategoryName: p.CategoryName,
	}
}

func ConvertProductsToEntity(ps []Product) []entity.Product {
	out := make([]entity.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, ConvertProductToEntity(p))
	}
	return out
}

// ConvertEntityProductNewToWrite normalizes the price to two decimal places.
// The price is validated by the form before it gets here.
func ConvertEntityProductNewToWrite(p entity.ProductNew) ProductWrite {
	price := p.Price
	if d, err := decimal.NewFromString(p.Price); err == nil {
		price = d.StringFixed(2)
	}
	return ProductWrite{
		Name:     p.Name,
		Price:    price,
		Category: p.CategoryID,
	}
}
