package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/csvimport"
	"github.com/jekabolt/store-console/internal/dashboard"
	"github.com/jekabolt/store-console/internal/filter"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/jekabolt/store-console/internal/notify"
	"github.com/jekabolt/store-console/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port           string           `mapstructure:"port"`
	Address        string           `mapstructure:"address"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	RateLimit      ratelimit.Config `mapstructure:"rate_limit"`
}

// Services are the console components the API exposes.
type Services struct {
	Dashboard     *dashboard.Orchestrator
	Debouncer     *filter.Debouncer
	Products      *catalog.Products
	Sales         *catalog.Sales
	Importer      *csvimport.Importer
	Notifications *notify.Center
	Format        *format.Formatter
	ExportPrefix  string
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	svc     Services
	limiter *ratelimit.Limiter
	done    chan struct{}
	now     func() time.Time
}

// New creates a new server
func New(config *Config, svc Services) *Server {
	s := &Server{
		c:    config,
		svc:  svc,
		done: make(chan struct{}),
		now:  time.Now,
	}
	if config.RateLimit.Max > 0 && config.RateLimit.Window > 0 {
		s.limiter = ratelimit.NewLimiter(config.RateLimit.Window, config.RateLimit.Max)
	}
	return s
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	if s.limiter != nil {
		r.Use(ratelimit.Mutations(s.limiter))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, ErrNotFound)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", s.getDashboard)
			r.Post("/reload", s.reloadDashboard)
			r.Get("/export.csv", s.exportPerformance)
			r.Route("/filter", func(r chi.Router) {
				r.Post("/", s.setFilter)
				r.Patch("/", s.editFilter)
				r.Delete("/", s.clearFilter)
			})
		})
		r.Get("/categories", s.listCategories)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Post("/", s.createProduct)
			r.Get("/export.csv", s.exportProducts)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.updateProduct)
				r.Delete("/", s.deleteProduct)
			})
		})
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", s.listSales)
			r.Post("/", s.createSale)
			r.Get("/export.csv", s.exportSales)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.updateSale)
				r.Delete("/", s.deleteSale)
			})
		})

		r.Route("/import", func(r chi.Router) {
			r.Get("/", s.importStatus)
			r.Post("/", s.importCSV)
		})
		r.Get("/notifications", s.listNotifications)
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, "store console listening", slog.String("addr", "http://"+listenerAddr))
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error", slog.String("err", err.Error()))
		}
		close(s.done)
	}()
	return nil
}

// Stop shuts the server down and waits for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}
