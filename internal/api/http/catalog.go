package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/entity"
)

// products

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Products.Load(r.Context()); err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.RenderList(w, r, NewProductListResponse(s.svc.Products.Items(), s.svc.Format))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	data := &ProductRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "createProduct:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Products.OpenCreate()
	p, err := s.svc.Products.Create(r.Context(), data.ProductNew())
	if err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Render(w, r, NewProductResponse(*p, s.svc.Format))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data := &ProductRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "updateProduct:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Products.OpenEdit(id)
	p, err := s.svc.Products.Update(r.Context(), id, data.ProductNew())
	if err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Render(w, r, NewProductResponse(*p, s.svc.Format))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	confirmed := catalog.Confirmed(r.URL.Query().Get("confirm") == "true")
	if err := s.svc.Products.Delete(r.Context(), id, confirmed); err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.NoContent(w, r)
}

// exportProducts encodes the list as last loaded; it never fetches.
func (s *Server) exportProducts(w http.ResponseWriter, r *http.Request) {
	s.writeCSV(w, r, entity.Products(s.svc.Products.Items()), "products")
}

// sales

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	if err := catalog.LoadSalesView(r.Context(), s.svc.Sales, s.svc.Products); err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.RenderList(w, r, NewSaleListResponse(s.svc.Sales.Items(), s.svc.Format))
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	data := &SaleRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "createSale:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Sales.OpenCreate()
	sale, err := s.svc.Sales.Create(r.Context(), data.SaleNew())
	if err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.Render(w, r, NewSaleResponse(*sale, s.svc.Format))
}

func (s *Server) updateSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data := &SaleRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "updateSale:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Sales.OpenEdit(id)
	sale, err := s.svc.Sales.Update(r.Context(), id, data.SaleNew())
	if err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Render(w, r, NewSaleResponse(*sale, s.svc.Format))
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	confirmed := catalog.Confirmed(r.URL.Query().Get("confirm") == "true")
	if err := s.svc.Sales.Delete(r.Context(), id, confirmed); err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) exportSales(w http.ResponseWriter, r *http.Request) {
	s.writeCSV(w, r, entity.Sales(s.svc.Sales.Items()), "sales")
}
