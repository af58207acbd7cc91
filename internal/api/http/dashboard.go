package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jekabolt/store-console/internal/csvexport"
)

func (s *Server) dashboardResponse() *DashboardResponse {
	return NewDashboardResponse(s.svc.Dashboard.Snapshot(), s.svc.Dashboard.Filter().Draft(), s.svc.Format)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, s.dashboardResponse())
}

func (s *Server) reloadDashboard(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Dashboard.Reload(r.Context()); err != nil {
		slog.Default().ErrorContext(r.Context(), "reloadDashboard:Reload", slog.String("err", err.Error()))
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Render(w, r, s.dashboardResponse())
}

// setFilter applies the change at once; a pending debounced edit is dropped.
func (s *Server) setFilter(w http.ResponseWriter, r *http.Request) {
	data := &FilterRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "setFilter:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	p, err := data.Patch()
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Debouncer.Stop()
	s.svc.Dashboard.Filter().Set(r.Context(), p)
	render.Render(w, r, s.dashboardResponse())
}

// editFilter changes the draft; the fetch runs once edits settle.
func (s *Server) editFilter(w http.ResponseWriter, r *http.Request) {
	data := &FilterRequest{}
	if err := render.Bind(r, data); err != nil {
		slog.Default().ErrorContext(r.Context(), "editFilter:render.Bind", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	p, err := data.Patch()
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	s.svc.Debouncer.Edit(r.Context(), p)
	render.Status(r, http.StatusAccepted)
	render.Render(w, r, s.dashboardResponse())
}

func (s *Server) clearFilter(w http.ResponseWriter, r *http.Request) {
	s.svc.Debouncer.Stop()
	s.svc.Dashboard.Filter().Clear(r.Context())
	render.Render(w, r, s.dashboardResponse())
}

func (s *Server) exportPerformance(w http.ResponseWriter, r *http.Request) {
	s.writeCSV(w, r, s.svc.Dashboard.Snapshot().Performance(), "products-performance")
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		s.svc.Dashboard.RefreshCategories(r.Context())
	}
	snap := s.svc.Dashboard.Snapshot()
	if len(snap.Categories) == 0 && snap.CategoriesErr != nil {
		render.Render(w, r, ErrFailure(snap.CategoriesErr))
		return
	}
	list := make([]CategoryResponse, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		list = append(list, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	render.JSON(w, r, list)
}

func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, t csvexport.Table, name string) {
	b, err := csvexport.Encode(t)
	if err != nil {
		slog.Default().WarnContext(r.Context(), "can't export csv", slog.String("table", name), slog.String("err", err.Error()))
		render.Render(w, r, ErrFailure(err))
		return
	}
	prefix := name
	if s.svc.ExportPrefix != "" {
		prefix = s.svc.ExportPrefix + "-" + name
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvexport.FileName(prefix, s.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
