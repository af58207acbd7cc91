package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

const maxUploadSize = 32 << 20

func (s *Server) importStatus(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewImportResponse(s.svc.Importer.State()))
}

func (s *Server) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "importCSV:FormFile", slog.String("err", err.Error()))
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	defer file.Close()

	if _, err := s.svc.Importer.Import(r.Context(), header.Filename, file); err != nil {
		render.Render(w, r, ErrFailure(err))
		return
	}
	render.Render(w, r, NewImportResponse(s.svc.Importer.State()))
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	render.RenderList(w, r, NewNotificationListResponse(s.svc.Notifications.Drain()))
}
