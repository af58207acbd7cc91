package csvimport

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
	"github.com/jekabolt/store-console/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadCSV(ctx context.Context, name string, r io.Reader) (*entity.ImportAck, error) {
	b, _ := io.ReadAll(r)
	args := m.Called(ctx, name, string(b))
	ack, _ := args.Get(0).(*entity.ImportAck)
	return ack, args.Error(1)
}

type busRecorder struct {
	topics []entity.Topic
}

func (b *busRecorder) Invalidate(_ context.Context, t entity.Topic) error {
	b.topics = append(b.topics, t)
	return nil
}

const csvBody = "name,price,category_id\nMouse,10.00,1\n"

func TestImportSuccess(t *testing.T) {
	api := &mockUploader{}
	api.On("UploadCSV", mock.Anything, "products.csv", csvBody).
		Return(&entity.ImportAck{StatusCode: 201, Message: "ok"}, nil).Once()
	bus := &busRecorder{}
	n := notify.New(0)
	imp := New(api, bus, n)

	ack, err := imp.Import(context.Background(), "/tmp/products.csv", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, "ok", ack.Message)

	s := imp.State()
	assert.Equal(t, StatusSucceeded, s.Status)
	assert.Equal(t, uint64(1), s.InputGeneration)
	assert.Equal(t, []entity.Topic{entity.TopicImport}, bus.topics)
	ns := n.Drain()
	require.Len(t, ns, 1)
	assert.Equal(t, entity.NotificationSuccess, ns[0].Level)
	api.AssertExpectations(t)
}

func TestImportRejectedByServer(t *testing.T) {
	api := &mockUploader{}
	api.On("UploadCSV", mock.Anything, "products.csv", csvBody).
		Return(nil, &gerr.Error{Kind: gerr.KindFormat, Op: "upload csv", Status: 400}).Once()
	bus := &busRecorder{}
	n := notify.New(0)
	imp := New(api, bus, n)

	_, err := imp.Import(context.Background(), "products.csv", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, gerr.ErrFormat)

	s := imp.State()
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, uint64(1), s.InputGeneration)
	assert.Empty(t, bus.topics)
	ns := n.Drain()
	require.Len(t, ns, 1)
	assert.Equal(t, "Import rejected: the file format is invalid", ns[0].Message)
}

func TestImportPrecheck(t *testing.T) {
	api := &mockUploader{}
	imp := New(api, nil, notify.New(0))
	ctx := context.Background()

	_, err := imp.Import(ctx, "products.xlsx", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, gerr.ErrFormat)

	_, err = imp.Import(ctx, "empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, gerr.ErrFormat)

	api.AssertNotCalled(t, "UploadCSV", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, uint64(2), imp.State().InputGeneration)
}

func TestImportNetworkFailure(t *testing.T) {
	api := &mockUploader{}
	api.On("UploadCSV", mock.Anything, "products.csv", csvBody).
		Return(nil, gerr.Network("upload csv", errors.New("refused"))).Once()
	n := notify.New(0)
	imp := New(api, nil, n)

	_, err := imp.Import(context.Background(), "products.csv", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, gerr.ErrNetwork)
	assert.Equal(t, "Import failed (network failure)", n.Drain()[0].Message)
}

func TestImportRejectsConcurrentUpload(t *testing.T) {
	api := &mockUploader{}
	release := make(chan time.Time)
	api.On("UploadCSV", mock.Anything, "products.csv", csvBody).
		WaitUntil(release).
		Return(&entity.ImportAck{StatusCode: 201}, nil).Once()
	imp := New(api, nil, notify.New(0))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := imp.Import(ctx, "products.csv", strings.NewReader(csvBody))
		done <- err
	}()
	require.Eventually(t, func() bool { return imp.State().Status == StatusUploading }, time.Second, time.Millisecond)

	_, err := imp.Import(ctx, "products.csv", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, gerr.ErrBusy)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, StatusSucceeded, imp.State().Status)
}
