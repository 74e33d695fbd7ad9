package adapter

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// ErrOutOfOrder is returned when a sample is not later than the last one.
var ErrOutOfOrder = errors.New("sample out of time order")

// errStopRange ends a Range early without reporting an error.
var errStopRange = errors.New("stop range")

// SampleStore keeps recorded samples in strictly increasing time order.
type SampleStore interface {
	Len() uint64
	Path() string
	Append(sample m.Sample) error
	// Range calls fn for every sample with begin <= time <= end, in order.
	Range(begin, end m.TimeStamp, fn func(sample m.Sample) error) error
	Close() error
}

type fileSampleStore struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
	last    *m.TimeStamp
}

// NewFileSampleStore creates a gob-encoded sample spill file in dir. An empty
// dir uses the system temporary directory. The file is removed on Close.
func NewFileSampleStore(dir string) (SampleStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "samples-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created sample spill", "path", file.Name())

	return &fileSampleStore{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Len implements SampleStore.
func (f *fileSampleStore) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Path implements SampleStore.
func (f *fileSampleStore) Path() string {
	return f.path
}

// Append implements SampleStore.
func (f *fileSampleStore) Append(sample m.Sample) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return os.ErrClosed
	}

	if f.last != nil && !sample.Time.After(*f.last) {
		return fmt.Errorf("%w: %s after %s", ErrOutOfOrder, sample.Time, *f.last)
	}

	if err := f.encoder.Encode(sample); err != nil {
		slog.Error("failed to encode sample", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode sample: %w", err)
	}

	at := sample.Time
	f.last = &at
	f.length++

	return nil
}

// Range implements SampleStore.
func (f *fileSampleStore) Range(begin, end m.TimeStamp, fn func(sample m.Sample) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.length == 0 || end.Before(begin) {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill for range", "path", f.path, "error", err)
		return fmt.Errorf("failed to open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	err = func() error {
		for i := range f.length {
			var sample m.Sample
			if err := decoder.Decode(&sample); err != nil {
				slog.Error("failed to decode sample during range", "path", f.path, "index", i, "error", err)
				return fmt.Errorf("failed to decode sample at index %d: %w", i, err)
			}

			if sample.Time.Before(begin) {
				continue
			}

			if sample.Time.After(end) {
				return errStopRange
			}

			if err := fn(sample); err != nil {
				return err
			}
		}

		return nil
	}()
	if errors.Is(err, errStopRange) {
		return nil
	}

	return err
}

// Close implements SampleStore.
func (f *fileSampleStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	closeErr := f.file.Close()
	f.file = nil

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		closeErr = errors.Join(closeErr, err)
	}

	if closeErr != nil {
		slog.Error("failed to close sample spill", "path", f.path, "error", closeErr)
		return fmt.Errorf("failed to close sample spill: %w", closeErr)
	}

	slog.Debug("closed sample spill", "path", f.path, "length", f.length)

	return nil
}
