package refresh

import (
	"context"
	"log/slog"
	"time"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	w.categories.RefreshCategories(ctx)
	if w.dashboard == nil || !w.c.Dashboard {
		return
	}
	if err := w.dashboard.Reload(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "can't reload dashboard",
			slog.String("err", err.Error()),
		)
	}
}
