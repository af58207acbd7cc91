package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jekabolt/store-console/config"
	httpapi "github.com/jekabolt/store-console/internal/api/http"
	"github.com/jekabolt/store-console/internal/cache"
	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/csvexport"
	"github.com/jekabolt/store-console/internal/csvimport"
	"github.com/jekabolt/store-console/internal/dashboard"
	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/internal/filter"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/jekabolt/store-console/internal/invalidate"
	"github.com/jekabolt/store-console/internal/notify"
	"github.com/jekabolt/store-console/internal/refresh"
	"github.com/jekabolt/store-console/internal/storeapi"
)

const (
	notificationCapacity = 64
	reloadConcurrency    = 3
)

// App wires the console components around one store API client.
type App struct {
	c        *config.Config
	done     chan struct{}
	doneOnce sync.Once

	Dashboard     *dashboard.Orchestrator
	Debouncer     *filter.Debouncer
	Categories    *cache.CategoryCache
	Products      *catalog.Products
	Sales         *catalog.Sales
	Importer      *csvimport.Importer
	Exporter      *csvexport.Exporter
	Notifications *notify.Center
	Format        *format.Formatter

	hs      *httpapi.Server
	refresh *refresh.Worker
}

// New returns a new instance of App backed by the configured store API.
func New(c *config.Config) (*App, error) {
	return NewWithAPI(c, storeapi.New(&c.API))
}

// NewWithAPI builds the components on top of api. Nothing is fetched yet.
func NewWithAPI(c *config.Config, api dependency.StoreAPI) (*App, error) {
	f, err := format.New(&c.Display)
	if err != nil {
		return nil, fmt.Errorf("can't create formatter: %w", err)
	}

	center := notify.New(notificationCapacity)
	bus := invalidate.New(reloadConcurrency)
	categories := cache.NewCategoryCache(api, c.Categories)
	orch := dashboard.New(api, categories, center)

	a := &App{
		c:             c,
		done:          make(chan struct{}),
		Dashboard:     orch,
		Debouncer:     filter.NewDebouncer(orch.Filter(), c.Dashboard.DebounceDelay),
		Categories:    categories,
		Products:      catalog.NewProducts(api, bus, center),
		Sales:         catalog.NewSales(api, bus, center),
		Importer:      csvimport.New(api, bus, center),
		Exporter:      csvexport.New(&c.Export),
		Notifications: center,
		Format:        f,
	}

	// Sales rows embed product names, and an import touches every view.
	bus.Subscribe("dashboard", orch, entity.TopicProducts, entity.TopicSales, entity.TopicImport)
	bus.Subscribe("products", a.Products, entity.TopicImport)
	bus.Subscribe("sales", a.Sales, entity.TopicProducts, entity.TopicImport)
	bus.Subscribe("categories", categoryReloader{categories: categories, dashboard: orch}, entity.TopicImport)

	return a, nil
}

// Start mounts the dashboard and starts the API server and the refresh worker.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting store console", slog.String("api", a.c.API.BaseURL))

	if err := a.Dashboard.Mount(ctx); err != nil {
		// The dashboard shows the failure; the console still starts.
		slog.Default().WarnContext(ctx, "initial dashboard load failed", slog.String("err", err.Error()))
	}

	a.refresh = refresh.New(&a.c.Refresh, a.Dashboard, a.Dashboard)
	if err := a.refresh.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start refresh worker", slog.String("err", err.Error()))
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP, httpapi.Services{
		Dashboard:     a.Dashboard,
		Debouncer:     a.Debouncer,
		Products:      a.Products,
		Sales:         a.Sales,
		Importer:      a.Importer,
		Notifications: a.Notifications,
		Format:        a.Format,
		ExportPrefix:  a.c.Export.Prefix,
	})
	if err := a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}
	go func() {
		<-a.hs.Done()
		a.closeDone()
	}()
	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	a.Debouncer.Stop()
	if a.refresh != nil {
		if err := a.refresh.Stop(); err != nil {
			slog.Default().WarnContext(ctx, "can't stop refresh worker", slog.String("err", err.Error()))
		}
	}
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "can't stop http server", slog.String("err", err.Error()))
		}
	}
	a.closeDone()
}

func (a *App) closeDone() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}

// categoryReloader drops the cached categories so the next read refetches them.
type categoryReloader struct {
	categories *cache.CategoryCache
	dashboard  *dashboard.Orchestrator
}

func (r categoryReloader) Reload(ctx context.Context) error {
	r.categories.Invalidate()
	r.dashboard.RefreshCategories(ctx)
	return nil
}
