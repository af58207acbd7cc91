package catalog

import (
	"context"

	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/internal/form"
	"golang.org/x/sync/errgroup"
)

type (
	Products = Coordinator[entity.Product, entity.ProductNew]
	Sales    = Coordinator[entity.Sale, entity.SaleNew]
)

func NewProducts(api dependency.Products, bus dependency.Invalidator, notifier dependency.Notifier) *Products {
	return New[entity.Product, entity.ProductNew]("product", entity.TopicProducts, productResource{api}, bus, notifier)
}

func NewSales(api dependency.Sales, bus dependency.Invalidator, notifier dependency.Notifier) *Sales {
	return New[entity.Sale, entity.SaleNew]("sale", entity.TopicSales, saleResource{api}, bus, notifier)
}

// LoadSalesView loads the sales list and the product picker together.
func LoadSalesView(ctx context.Context, sales *Sales, products *Products) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sales.Load(ctx) })
	g.Go(func() error { return products.Load(ctx) })
	return g.Wait()
}

type productResource struct {
	api dependency.Products
}

func (r productResource) List(ctx context.Context) ([]entity.Product, error) {
	return r.api.ListProducts(ctx)
}

func (r productResource) Create(ctx context.Context, p entity.ProductNew) (*entity.Product, error) {
	return r.api.CreateProduct(ctx, p)
}

func (r productResource) Update(ctx context.Context, id int, p entity.ProductNew) (*entity.Product, error) {
	return r.api.UpdateProduct(ctx, id, p)
}

func (r productResource) Delete(ctx context.Context, id int) error {
	return r.api.DeleteProduct(ctx, id)
}

func (r productResource) Validate(p entity.ProductNew) error {
	return form.ValidateProduct(p)
}

type saleResource struct {
	api dependency.Sales
}

func (r saleResource) List(ctx context.Context) ([]entity.Sale, error) {
	return r.api.ListSales(ctx)
}

func (r saleResource) Create(ctx context.Context, s entity.SaleNew) (*entity.Sale, error) {
	return r.api.CreateSale(ctx, s)
}

func (r saleResource) Update(ctx context.Context, id int, s entity.SaleNew) (*entity.Sale, error) {
	return r.api.UpdateSale(ctx, id, s)
}

func (r saleResource) Delete(ctx context.Context, id int) error {
	return r.api.DeleteSale(ctx, id)
}

func (r saleResource) Validate(s entity.SaleNew) error {
	return form.ValidateSale(s)
}
