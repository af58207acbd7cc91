// Package csvimport uploads CSV files to the bulk import endpoint.
package csvimport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUploading:
		return "uploading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is the observable progress of the importer. InputGeneration changes
// after every finished upload so the file input can be reset and the same
// file picked again.
type State struct {
	Status          Status
	FileName        string
	Ack             *entity.ImportAck
	Err             error
	InputGeneration uint64
}

type Importer struct {
	api      dependency.Uploader
	bus      dependency.Invalidator
	notifier dependency.Notifier

	mu    sync.RWMutex
	state State
}

func New(api dependency.Uploader, bus dependency.Invalidator, notifier dependency.Notifier) *Importer {
	return &Importer{api: api, bus: bus, notifier: notifier}
}

func (i *Importer) State() State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// Import uploads r as the multipart field "file". Only one import runs at a
// time. On success every view derived from products and sales is reloaded.
func (i *Importer) Import(ctx context.Context, name string, r io.Reader) (*entity.ImportAck, error) {
	i.mu.Lock()
	if i.state.Status == StatusUploading {
		i.mu.Unlock()
		return nil, gerr.ErrBusy
	}
	i.state = State{Status: StatusUploading, FileName: name, InputGeneration: i.state.InputGeneration}
	i.mu.Unlock()

	body, err := precheck(name, r)
	if err != nil {
		return nil, i.fail(ctx, err)
	}

	ack, err := i.api.UploadCSV(ctx, filepath.Base(name), body)
	if err != nil {
		return nil, i.fail(ctx, err)
	}

	i.mu.Lock()
	i.state.Status = StatusSucceeded
	i.state.Ack = ack
	i.state.InputGeneration++
	i.mu.Unlock()

	slog.Default().InfoContext(ctx, "csv imported",
		slog.String("file", name),
		slog.Int("status", ack.StatusCode),
		slog.String("message", ack.Message),
	)
	i.notifier.Notify(ctx, entity.NotificationSuccess, "CSV imported successfully")

	if i.bus != nil {
		if err := i.bus.Invalidate(ctx, entity.TopicImport); err != nil {
			slog.Default().WarnContext(ctx, "can't refresh views after import", slog.String("err", err.Error()))
		}
	}
	return ack, nil
}

// precheck rejects what is visibly not a CSV file without a round trip.
func precheck(name string, r io.Reader) (io.Reader, error) {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return nil, gerr.Format("import csv", fmt.Sprintf("%q is not a .csv file", filepath.Base(name)))
	}
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if err == io.EOF {
			return nil, gerr.Format("import csv", "file is empty")
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return br, nil
}

func (i *Importer) fail(ctx context.Context, err error) error {
	i.mu.Lock()
	i.state.Status = StatusFailed
	i.state.Err = err
	i.state.InputGeneration++
	i.mu.Unlock()

	slog.Default().ErrorContext(ctx, "csv import failed", slog.String("err", err.Error()))

	switch gerr.KindOf(err) {
	case gerr.KindFormat, gerr.KindValidation:
		i.notifier.Notify(ctx, entity.NotificationError, "Import rejected: the file format is invalid")
	default:
		i.notifier.Notify(ctx, entity.NotificationError,
			fmt.Sprintf("Import failed (%s failure)", gerr.KindOf(err)))
	}
	return fmt.Errorf("can't import csv: %w", err)
}
