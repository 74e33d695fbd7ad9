package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

// ErrUnknownReference is returned when querying a reference that was never
// created or has been released.
var ErrUnknownReference = errors.New("unknown reference")

// ValueSource reads item values from the simulator.
type ValueSource interface {
	Now() m.TimeStamp
	Describe(designations []m.Designation) ([]m.ValueWidth, error)
	ReadValues(keys []m.ValueKey) (map[m.ValueKey][]uint32, error)
}

type referenceKey struct {
	session string
	name    string
}

// Recorder samples the values of every referenced item at each time step
// and answers interval queries from the recorded history. References belong
// to a session; the history is shared.
type Recorder struct {
	mu       sync.Mutex
	source   ValueSource
	store    adapter.SampleStore
	refs     map[referenceKey][]m.ValueWidth
	watched  map[m.ValueKey]int
	latest   *m.Sample
	// sampling holds the choice of each session that asked; with no choices
	// recorded, steps are sampled.
	sampling map[string]bool
}

// NewRecorder creates a recorder that spills history to store.
func NewRecorder(source ValueSource, store adapter.SampleStore) *Recorder {
	return &Recorder{
		source:   source,
		store:    store,
		refs:     make(map[referenceKey][]m.ValueWidth),
		watched:  make(map[m.ValueKey]int),
		sampling: make(map[string]bool),
	}
}

// Attach registers the time step callback.
func (r *Recorder) Attach(reg CallbackRegistrar) error {
	return reg.RegisterCallback(adapter.CbNextTimeStep, r.HandleStep)
}

// SetSampling records whether session wants values sampled at time steps.
// Steps are sampled while any session wants it.
func (r *Recorder) SetSampling(session string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sampling[session] = on
}

func (r *Recorder) samplingLocked() bool {
	if len(r.sampling) == 0 {
		return true
	}

	for _, on := range r.sampling {
		if on {
			return true
		}
	}

	return false
}

// Reference binds name to the designated items for session, replacing any
// previous binding, and records their current values. A nil items list
// releases the reference.
func (r *Recorder) Reference(session, name string, items []m.Designation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := referenceKey{session: session, name: name}

	if items == nil {
		r.releaseLocked(key)

		return nil
	}

	widths, err := r.source.Describe(items)
	if err != nil {
		return fmt.Errorf("reference %q: %w", name, err)
	}

	r.releaseLocked(key)
	r.refs[key] = widths

	for _, w := range widths {
		r.watched[w.Key]++
	}

	if err := r.sampleLocked(r.source.Now()); err != nil {
		slog.Warn("Failed to record referenced values", "reference", name, "error", err)
	}

	return nil
}

// ReleaseSession drops every reference and the sampling choice of session.
func (r *Recorder) ReleaseSession(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sampling, session)

	for key := range r.refs {
		if key.session == session {
			r.releaseLocked(key)
		}
	}
}

func (r *Recorder) releaseLocked(key referenceKey) {
	widths, ok := r.refs[key]
	if !ok {
		return
	}

	delete(r.refs, key)

	for _, w := range widths {
		r.watched[w.Key]--
		if r.watched[w.Key] <= 0 {
			delete(r.watched, w.Key)
		}
	}
}

// HandleStep records the watched values at a new simulation time.
func (r *Recorder) HandleStep(data adapter.CallbackData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.watched) == 0 || !r.samplingLocked() {
		return
	}

	if err := r.sampleLocked(data.Time); err != nil {
		slog.Warn("Failed to record sample", "time", data.Time, "error", err)
	}
}

// sampleLocked reads every watched key. A sample at the time of the latest
// one is merged into it; a later sample flushes the latest one to the store.
func (r *Recorder) sampleLocked(at m.TimeStamp) error {
	keys := make([]m.ValueKey, 0, len(r.watched))
	for key := range r.watched {
		keys = append(keys, key)
	}

	values, readErr := r.source.ReadValues(keys)
	if readErr != nil {
		readErr = fmt.Errorf("read values: %w", readErr)
	}

	if r.latest != nil && r.latest.Time.Compare(at) == 0 {
		for key, value := range values {
			r.latest.Values[key] = value
		}

		return readErr
	}

	if r.latest != nil {
		if err := r.store.Append(*r.latest); err != nil {
			return errors.Join(readErr, fmt.Errorf("spill sample: %w", err))
		}
	}

	r.latest = &m.Sample{Time: at, Values: values}

	return readErr
}

// Query returns the samples with begin <= time <= end. When reference is nil
// only sample times are reported. With collapse, a sample whose values equal
// the previous sample's is left out. Values not recorded at a sample time
// encode as zero.
func (r *Recorder) Query(
	session string,
	reference *string,
	begin, end m.TimeStamp,
	collapse bool,
	enc protocol.ValueEncoding,
) ([]protocol.SampleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var widths []m.ValueWidth

	if reference != nil {
		var ok bool

		widths, ok = r.refs[referenceKey{session: session, name: *reference}]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReference, *reference)
		}
	}

	records := []protocol.SampleRecord{}

	var previous []uint32

	emit := func(sample m.Sample) error {
		var chunks []uint32
		for _, w := range widths {
			chunks = protocol.AppendValue(chunks, sample.Values[w.Key], w.Width)
		}

		if collapse && len(records) > 0 && slices.Equal(previous, chunks) {
			return nil
		}

		previous = chunks
		record := protocol.SampleRecord{Time: sample.Time}

		if reference != nil {
			encoded, err := protocol.EncodeValues(enc, chunks)
			if err != nil {
				return err
			}

			record.ItemValues = &encoded
		}

		records = append(records, record)

		return nil
	}

	if err := r.store.Range(begin, end, emit); err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}

	if r.latest != nil && !r.latest.Time.Before(begin) && !r.latest.Time.After(end) {
		if err := emit(*r.latest); err != nil {
			return nil, fmt.Errorf("query samples: %w", err)
		}
	}

	return records, nil
}

// Close closes the store. The unflushed latest sample is dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latest = nil

	return r.store.Close()
}
