package filter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jekabolt/store-console/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []entity.FilterParams
}

func (r *recorder) Trigger(_ context.Context, f entity.FilterParams) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, f)
}

func (r *recorder) all() []entity.FilterParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.FilterParams(nil), r.calls...)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(i int) *int { return &i }

func TestEditDoesNotTrigger(t *testing.T) {
	rec := &recorder{}
	s := New(rec)

	s.Edit(Patch{StartDate: date(2024, 1, 1)})
	s.Edit(Patch{CategoryID: intPtr(3)})

	assert.Empty(t, rec.all())
	assert.True(t, s.Current().IsEmpty())
	assert.Equal(t, 3, s.Draft().CategoryID)
}

func TestApplyTriggersWithDraft(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	ctx := context.Background()

	s.Edit(Patch{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)})
	got := s.Apply(ctx)

	require.Len(t, rec.all(), 1)
	assert.Equal(t, got, rec.all()[0])
	assert.Equal(t, got, s.Current())
}

func TestSetReplacesValue(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	ctx := context.Background()

	first := s.Set(ctx, Patch{CategoryID: intPtr(2)})
	second := s.Set(ctx, Patch{StartDate: date(2024, 2, 1)})

	assert.Equal(t, 2, first.CategoryID)
	assert.True(t, first.StartDate.IsZero())
	assert.Equal(t, 2, second.CategoryID)
	assert.Equal(t, *date(2024, 2, 1), second.StartDate)
	assert.Equal(t, []entity.FilterParams{first, second}, rec.all())

	cleared := s.Set(ctx, Patch{CategoryID: intPtr(0)})
	assert.Equal(t, 0, cleared.CategoryID)
}

func TestInvertedRangeStillTriggers(t *testing.T) {
	rec := &recorder{}
	s := New(rec)

	f := s.Set(context.Background(), Patch{StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 1)})

	require.Len(t, rec.all(), 1)
	assert.True(t, f.HasInvertedRange())
}

func TestClearPassesClearedValue(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	ctx := context.Background()

	s.Set(ctx, Patch{StartDate: date(2024, 1, 1), CategoryID: intPtr(4)})
	s.Edit(Patch{EndDate: date(2024, 2, 1)})
	s.Clear(ctx)

	calls := rec.all()
	require.Len(t, calls, 2)
	assert.True(t, calls[1].IsEmpty())
	assert.True(t, s.Current().IsEmpty())
	assert.True(t, s.Draft().IsEmpty())
}

func TestDebouncerCoalescesEdits(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	d := NewDebouncer(s, 20*time.Millisecond)
	ctx := context.Background()

	d.Edit(ctx, Patch{CategoryID: intPtr(1)})
	d.Edit(ctx, Patch{CategoryID: intPtr(2)})
	d.Edit(ctx, Patch{CategoryID: intPtr(3)})

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, 3, rec.all()[0].CategoryID)
}

func TestDebouncerFlushAndStop(t *testing.T) {
	rec := &recorder{}
	s := New(rec)
	d := NewDebouncer(s, time.Hour)
	ctx := context.Background()

	d.Edit(ctx, Patch{CategoryID: intPtr(5)})
	f := d.Flush(ctx)
	assert.Equal(t, 5, f.CategoryID)
	require.Len(t, rec.all(), 1)

	d.Flush(ctx)
	assert.Len(t, rec.all(), 1)

	d.Edit(ctx, Patch{CategoryID: intPtr(6)})
	d.Stop()
	assert.Len(t, rec.all(), 1)
	assert.Equal(t, 5, s.Current().CategoryID)
}
