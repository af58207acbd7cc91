// Package catalog coordinates create, update and delete of products and sales.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogEdit
	DialogConfirmDelete
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreate:
		return "create"
	case DialogEdit:
		return "edit"
	case DialogConfirmDelete:
		return "confirm_delete"
	default:
		return "closed"
	}
}

// Dialog is the form or confirmation the view shows. TargetID is set for
// edit and delete.
type Dialog struct {
	Mode     DialogMode
	TargetID int
}

type Item interface {
	Key() int
}

// Resource is the server side of one entity type.
type Resource[T Item, N any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, n N) (*T, error)
	Update(ctx context.Context, id int, n N) (*T, error)
	Delete(ctx context.Context, id int) error
	// Validate checks the form before any request is sent.
	Validate(n N) error
}

// Coordinator owns the list view of one entity type. The list only changes
// by reloading it from the server after a successful mutation.
type Coordinator[T Item, N any] struct {
	name     string
	title    string
	topic    entity.Topic
	res      Resource[T, N]
	bus      dependency.Invalidator
	notifier dependency.Notifier

	mu     sync.RWMutex
	items  []T
	dialog Dialog
}

func New[T Item, N any](name string, topic entity.Topic, res Resource[T, N], bus dependency.Invalidator, notifier dependency.Notifier) *Coordinator[T, N] {
	return &Coordinator[T, N]{
		name:     name,
		title:    cases.Title(language.English).String(name),
		topic:    topic,
		res:      res,
		bus:      bus,
		notifier: notifier,
	}
}

// Load replaces the list with the server's. A failure keeps the old list.
func (c *Coordinator[T, N]) Load(ctx context.Context) error {
	items, err := c.res.List(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't load list",
			slog.String("entity", c.name),
			slog.String("err", err.Error()),
		)
		c.notifier.Notify(ctx, entity.NotificationError,
			fmt.Sprintf("Could not load %ss (%s failure)", c.name, gerr.KindOf(err)))
		return fmt.Errorf("can't load %ss: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	return nil
}

// Reload makes the coordinator a target of the invalidation bus.
func (c *Coordinator[T, N]) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Coordinator[T, N]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Coordinator[T, N]) Find(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Coordinator[T, N]) Dialog() Dialog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dialog
}

func (c *Coordinator[T, N]) OpenCreate() {
	c.setDialog(Dialog{Mode: DialogCreate})
}

func (c *Coordinator[T, N]) OpenEdit(id int) {
	c.setDialog(Dialog{Mode: DialogEdit, TargetID: id})
}

func (c *Coordinator[T, N]) Close() {
	c.setDialog(Dialog{})
}

func (c *Coordinator[T, N]) setDialog(d Dialog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = d
}

func (c *Coordinator[T, N]) Create(ctx context.Context, n N) (*T, error) {
	if err := c.res.Validate(n); err != nil {
		return nil, c.fail(ctx, "create", err)
	}
	created, err := c.res.Create(ctx, n)
	if err != nil {
		return nil, c.fail(ctx, "create", err)
	}
	c.succeed(ctx, "created")
	return created, nil
}

func (c *Coordinator[T, N]) Update(ctx context.Context, id int, n N) (*T, error) {
	if err := c.res.Validate(n); err != nil {
		return nil, c.fail(ctx, "update", err)
	}
	updated, err := c.res.Update(ctx, id, n)
	if err != nil {
		return nil, c.fail(ctx, "update", err)
	}
	c.succeed(ctx, "updated")
	return updated, nil
}

// Delete asks for confirmation before the request is issued. A declined
// confirmation closes the dialog and returns gerr.ErrNotConfirmed.
func (c *Coordinator[T, N]) Delete(ctx context.Context, id int, confirmer dependency.Confirmer) error {
	c.setDialog(Dialog{Mode: DialogConfirmDelete, TargetID: id})

	if !confirmer.Confirm(ctx, fmt.Sprintf("Delete %s %d? This can't be undone.", c.name, id)) {
		c.Close()
		return gerr.ErrNotConfirmed
	}
	if err := c.res.Delete(ctx, id); err != nil {
		return c.fail(ctx, "delete", err)
	}
	c.succeed(ctx, "deleted")
	return nil
}

// fail leaves the dialog and the list as they are.
func (c *Coordinator[T, N]) fail(ctx context.Context, action string, err error) error {
	slog.Default().ErrorContext(ctx, "mutation failed",
		slog.String("entity", c.name),
		slog.String("action", action),
		slog.String("kind", gerr.KindOf(err).String()),
		slog.String("err", err.Error()),
	)
	msg := fmt.Sprintf("Could not %s %s (%s failure)", action, c.name, gerr.KindOf(err))
	var e *gerr.Error
	if gerr.KindOf(err) == gerr.KindValidation && errors.As(err, &e) && e.Detail != "" {
		msg += ": " + e.Detail
	}
	c.notifier.Notify(ctx, entity.NotificationError, msg)
	return fmt.Errorf("can't %s %s: %w", action, c.name, err)
}

func (c *Coordinator[T, N]) succeed(ctx context.Context, done string) {
	c.Close()
	c.notifier.Notify(ctx, entity.NotificationSuccess, fmt.Sprintf("%s %s successfully", c.title, done))

	// The mutation already happened; reload failures are reported by Load
	// and by the bus, not returned.
	_ = c.Load(ctx)
	if c.bus == nil {
		return
	}
	if err := c.bus.Invalidate(ctx, c.topic); err != nil {
		slog.Default().WarnContext(ctx, "can't refresh dependent views",
			slog.String("topic", string(c.topic)),
			slog.String("err", err.Error()),
		)
	}
}
