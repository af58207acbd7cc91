package dependency

import (
	"context"
	"io"

	"github.com/jekabolt/store-console/internal/entity"
)

type (
	Analytics interface {
		// Analysis returns the aggregates and the revenue series for the filter.
		Analysis(ctx context.Context, f entity.FilterParams) (*entity.Analysis, error)
	}
	Categories interface {
		// Categories returns the category reference list.
		Categories(ctx context.Context) ([]entity.Category, error)
	}
	Products interface {
		ListProducts(ctx context.Context) ([]entity.Product, error)
		CreateProduct(ctx context.Context, p entity.ProductNew) (*entity.Product, error)
		UpdateProduct(ctx context.Context, id int, p entity.ProductNew) (*entity.Product, error)
		DeleteProduct(ctx context.Context, id int) error
	}
	Sales interface {
		ListSales(ctx context.Context) ([]entity.Sale, error)
		CreateSale(ctx context.Context, s entity.SaleNew) (*entity.Sale, error)
		UpdateSale(ctx context.Context, id int, s entity.SaleNew) (*entity.Sale, error)
		DeleteSale(ctx context.Context, id int) error
	}
	Uploader interface {
		// UploadCSV sends the file as the multipart field "file".
		UploadCSV(ctx context.Context, name string, r io.Reader) (*entity.ImportAck, error)
	}
	// StoreAPI is the whole backend surface.
	StoreAPI interface {
		Analytics
		Categories
		Products
		Sales
		Uploader
	}

	Notifier interface {
		Notify(ctx context.Context, level entity.NotificationLevel, msg string)
	}
	// Invalidator fans a changed entity type out to the views derived from it.
	Invalidator interface {
		Invalidate(ctx context.Context, topic entity.Topic) error
	}
	Reloader interface {
		Reload(ctx context.Context) error
	}
	// Confirmer asks the user to approve a destructive action.
	Confirmer interface {
		Confirm(ctx context.Context, prompt string) bool
	}
)
