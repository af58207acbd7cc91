// Package dashboard runs the analytics queries behind the dashboard view.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/jekabolt/store-console/internal/filter"
)

// CategorySource serves the category list, possibly stale together with an error.
type CategorySource interface {
	Get(ctx context.Context) ([]entity.Category, error)
}

// Orchestrator issues analytics fetches and commits only the response of the
// last issued request. Earlier responses that arrive late are dropped.
type Orchestrator struct {
	api        dependency.Analytics
	categories CategorySource
	notifier   dependency.Notifier
	filter     *filter.State

	mu     sync.Mutex
	issued uint64
	snap   Snapshot
	now    func() time.Time
}

func New(api dependency.Analytics, categories CategorySource, notifier dependency.Notifier) *Orchestrator {
	o := &Orchestrator{
		api:        api,
		categories: categories,
		notifier:   notifier,
		now:        time.Now,
	}
	o.filter = filter.New(o)
	return o
}

// Filter is the filter state that drives this orchestrator.
func (o *Orchestrator) Filter() *filter.State {
	return o.filter
}

// Mount starts the best-effort category load and the initial fetch with the
// current (empty at start) filter. The category load never blocks the fetch.
func (o *Orchestrator) Mount(ctx context.Context) error {
	go o.RefreshCategories(context.WithoutCancel(ctx))
	return o.Reload(ctx)
}

// Trigger is called by the filter state on every applied change. The filter
// is read again when the request is issued, so concurrent applies commit in
// the order they were applied even when their triggers arrive reordered.
func (o *Orchestrator) Trigger(ctx context.Context, _ entity.FilterParams) {
	_, _ = o.fetch(context.WithoutCancel(ctx), o.filter.Current)
}

// Reload fetches with the currently applied filter. A superseded result is
// not an error for the caller.
func (o *Orchestrator) Reload(ctx context.Context) error {
	_, err := o.fetch(ctx, o.filter.Current)
	if errors.Is(err, gerr.ErrSuperseded) {
		return nil
	}
	return err
}

// Fetch issues one analytics request. It returns gerr.ErrSuperseded when a
// newer request was issued before this one resolved.
func (o *Orchestrator) Fetch(ctx context.Context, f entity.FilterParams) (*entity.Analysis, error) {
	return o.fetch(ctx, func() entity.FilterParams { return f })
}

// fetch resolves the filter and takes the sequence number under one lock.
func (o *Orchestrator) fetch(ctx context.Context, filterAt func() entity.FilterParams) (*entity.Analysis, error) {
	o.mu.Lock()
	f := filterAt()
	o.issued++
	seq := o.issued
	o.snap.Status = StatusLoading
	o.snap.Issued = seq
	o.mu.Unlock()

	reqID := uuid.NewString()
	log := slog.Default().With(
		slog.Uint64("seq", seq),
		slog.String("request_id", reqID),
		slog.String("filter", f.String()),
	)
	log.DebugContext(ctx, "fetching analysis")

	a, err := o.api.Analysis(ctx, f)

	o.mu.Lock()
	if latest := o.issued; seq != latest {
		o.mu.Unlock()
		log.DebugContext(ctx, "discarding superseded analysis", slog.Uint64("latest", latest))
		return nil, gerr.ErrSuperseded
	}
	o.snap.UpdatedAt = o.now()
	if err != nil {
		o.snap.Status = StatusFailed
		o.snap.Err = err
		o.mu.Unlock()

		log.ErrorContext(ctx, "can't fetch analysis", slog.String("err", err.Error()))
		o.notifier.Notify(ctx, entity.NotificationError,
			fmt.Sprintf("Dashboard data could not be loaded (%s failure)", gerr.KindOf(err)))
		return nil, fmt.Errorf("can't fetch analysis: %w", err)
	}
	o.snap.Status = StatusReady
	o.snap.Err = nil
	o.snap.Filter = f
	o.snap.Analysis = a
	o.snap.Committed = seq
	o.mu.Unlock()

	return a, nil
}

// RefreshCategories loads the category list. Failure degrades the filter
// options but never the dashboard.
func (o *Orchestrator) RefreshCategories(ctx context.Context) {
	cs, err := o.categories.Get(ctx)

	o.mu.Lock()
	if cs != nil || err == nil {
		o.snap.Categories = cs
	}
	o.snap.CategoriesErr = err
	o.mu.Unlock()

	if err != nil {
		slog.Default().WarnContext(ctx, "categories unavailable", slog.String("err", err.Error()))
		o.notifier.Notify(ctx, entity.NotificationWarning, "Categories could not be loaded; category filter is limited")
	}
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.snap
	s.Categories = append([]entity.Category(nil), o.snap.Categories...)
	return s
}
