package entity

import "github.com/shopspring/decimal"

// Category is read-only reference data used by the dashboard filter
// and the product form.
type Category struct {
	ID   int
	Name string
}

type Product struct {
	ID           int
	Name         string
	Price        decimal.Decimal
	CategoryID   int
	CategoryName string
}

func (p Product) Key() int { return p.ID }

// ProductNew is the body of product create and update.
type ProductNew struct {
	Name       string
	Price      string
	CategoryID int
}

// Products is the product list as exported to CSV.
type Products []Product

func (ps Products) Header() []string {
	return []string{"id", "name", "price", "category"}
}

func (ps Products) Records() [][]string {
	out := make([][]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, []string{itoa(p.ID), p.Name, p.Price.StringFixed(2), p.CategoryName})
	}
	return out
}
