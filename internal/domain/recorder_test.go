package domain

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

// fakeValues serves fixed item widths and mutable values.
type fakeValues struct {
	mu     sync.Mutex
	now    m.TimeStamp
	widths map[m.Path]int
	depths map[m.Path]int
	values map[m.ValueKey][]uint32
	reads  int
}

func newFakeValues() *fakeValues {
	return &fakeValues{
		widths: map[m.Path]int{"top count": 8, "top ram": 8},
		depths: map[m.Path]int{"top ram": 4},
		values: make(map[m.ValueKey][]uint32),
	}
}

func (f *fakeValues) set(path m.Path, row int, value uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[m.ValueKey{Path: path, Row: row}] = []uint32{value}
}

func (f *fakeValues) advance(at m.TimeStamp) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = at
}

func (f *fakeValues) Now() m.TimeStamp {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *fakeValues) Describe(designations []m.Designation) ([]m.ValueWidth, error) {
	var widths []m.ValueWidth

	for _, d := range designations {
		width, ok := f.widths[d.Path]
		if !ok {
			return nil, fmt.Errorf("%w: %s", adapter.ErrUnknownItem, d.Path)
		}

		_, memory := f.depths[d.Path]
		if memory != d.HasRows {
			return nil, fmt.Errorf("%w: %s", adapter.ErrInvalidRow, d.Path)
		}

		for _, key := range d.Keys() {
			widths = append(widths, m.ValueWidth{Key: key, Width: width})
		}
	}

	return widths, nil
}

func (f *fakeValues) ReadValues(keys []m.ValueKey) (map[m.ValueKey][]uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reads++

	values := make(map[m.ValueKey][]uint32, len(keys))
	for _, key := range keys {
		if value, ok := f.values[key]; ok {
			values[key] = append([]uint32(nil), value...)
		}
	}

	return values, nil
}

func newTestRecorder(t *testing.T) (*Recorder, *fakeValues) {
	t.Helper()

	store, err := adapter.NewFileSampleStore(t.TempDir())
	require.NoError(t, err)

	source := newFakeValues()
	recorder := NewRecorder(source, store)

	t.Cleanup(func() { _ = recorder.Close() })

	return recorder, source
}

func decodeRecord(t *testing.T, record protocol.SampleRecord) []uint32 {
	t.Helper()

	require.NotNil(t, record.ItemValues)

	chunks, err := protocol.DecodeValues(protocol.EncodingBase64U32, *record.ItemValues)
	require.NoError(t, err)

	return chunks
}

func step(recorder *Recorder, source *fakeValues, femtos uint64) {
	at := m.NewTimeStamp(0, femtos)
	source.advance(at)
	recorder.HandleStep(adapter.CallbackData{Reason: adapter.CbNextTimeStep, Time: at})
}

func TestRecorder_ReferenceSamplesImmediately(t *testing.T) {
	// Arrange
	recorder, source := newTestRecorder(t)
	source.set("top count", m.NodeRow, 7)

	// Act
	err := recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}})
	require.NoError(t, err)

	records, err := recorder.Query("s1", m.StringPtr("watch"), m.TimeStamp{}, m.NewTimeStamp(1, 0), false, protocol.EncodingBase64U32)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, m.TimeStamp{}, records[0].Time)
	assert.Equal(t, []uint32{7}, decodeRecord(t, records[0]))
}

func TestRecorder_QueryWindowAndCollapse(t *testing.T) {
	recorder, source := newTestRecorder(t)
	source.set("top count", m.NodeRow, 1)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))

	step(recorder, source, 100)
	source.set("top count", m.NodeRow, 2)
	step(recorder, source, 200)
	step(recorder, source, 300)
	source.set("top count", m.NodeRow, 3)
	step(recorder, source, 400)

	begin, end := m.NewTimeStamp(0, 100), m.NewTimeStamp(0, 400)

	tests := []struct {
		name     string
		collapse bool
		want     map[uint64]uint32
		times    []uint64
	}{
		{
			name:  "every sample in the window",
			times: []uint64{100, 200, 300, 400},
			want:  map[uint64]uint32{100: 1, 200: 2, 300: 2, 400: 3},
		},
		{
			name:     "collapse drops repeated values",
			collapse: true,
			times:    []uint64{100, 200, 400},
			want:     map[uint64]uint32{100: 1, 200: 2, 400: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := recorder.Query("s1", m.StringPtr("watch"), begin, end, tt.collapse, protocol.EncodingBase64U32)
			require.NoError(t, err)
			require.Len(t, records, len(tt.times))

			for i, record := range records {
				assert.Equal(t, m.NewTimeStamp(0, tt.times[i]), record.Time)
				assert.Equal(t, []uint32{tt.want[tt.times[i]]}, decodeRecord(t, record))
			}
		})
	}
}

func TestRecorder_QueryTimesOnly(t *testing.T) {
	recorder, source := newTestRecorder(t)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))
	step(recorder, source, 100)

	records, err := recorder.Query("s1", nil, m.TimeStamp{}, m.NewTimeStamp(0, 100), false, protocol.EncodingBase64U32)

	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, record := range records {
		assert.Nil(t, record.ItemValues)
	}
}

func TestRecorder_MissingValuesEncodeAsZero(t *testing.T) {
	recorder, source := newTestRecorder(t)
	source.set("top ram", 0, 9)

	require.NoError(t, recorder.Reference("s1", "mem", []m.Designation{
		{Path: "top ram", HasRows: true, First: 0, Last: 1},
	}))

	records, err := recorder.Query("s1", m.StringPtr("mem"), m.TimeStamp{}, m.TimeStamp{}, false, protocol.EncodingBase64U32)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []uint32{9, 0}, decodeRecord(t, records[0]))
}

func TestRecorder_ReferenceErrors(t *testing.T) {
	recorder, _ := newTestRecorder(t)

	err := recorder.Reference("s1", "bad", []m.Designation{{Path: "top missing"}})
	assert.ErrorIs(t, err, adapter.ErrUnknownItem)

	err = recorder.Reference("s1", "bad", []m.Designation{{Path: "top count", HasRows: true}})
	assert.ErrorIs(t, err, adapter.ErrInvalidRow)

	_, err = recorder.Query("s1", m.StringPtr("bad"), m.TimeStamp{}, m.TimeStamp{}, false, protocol.EncodingBase64U32)
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestRecorder_ReferencesAreScopedToSessions(t *testing.T) {
	recorder, _ := newTestRecorder(t)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))

	_, err := recorder.Query("s2", m.StringPtr("watch"), m.TimeStamp{}, m.TimeStamp{}, false, protocol.EncodingBase64U32)
	assert.ErrorIs(t, err, ErrUnknownReference)

	recorder.ReleaseSession("s1")

	_, err = recorder.Query("s1", m.StringPtr("watch"), m.TimeStamp{}, m.TimeStamp{}, false, protocol.EncodingBase64U32)
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestRecorder_NilItemsReleaseReference(t *testing.T) {
	recorder, source := newTestRecorder(t)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))
	require.NoError(t, recorder.Reference("s1", "watch", nil))

	reads := source.reads
	step(recorder, source, 100)

	assert.Equal(t, reads, source.reads, "no item is watched after release")

	_, err := recorder.Query("s1", m.StringPtr("watch"), m.TimeStamp{}, m.TimeStamp{}, false, protocol.EncodingBase64U32)
	assert.True(t, errors.Is(err, ErrUnknownReference))
}

func TestRecorder_SamplingDisabled(t *testing.T) {
	recorder, source := newTestRecorder(t)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))
	recorder.SetSampling("s1", false)

	step(recorder, source, 100)

	records, err := recorder.Query("s1", nil, m.TimeStamp{}, m.NewTimeStamp(1, 0), false, protocol.EncodingBase64U32)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecorder_SamplingFollowsAnyInterestedSession(t *testing.T) {
	// Arrange
	recorder, source := newTestRecorder(t)

	require.NoError(t, recorder.Reference("s1", "watch", []m.Designation{{Path: "top count"}}))
	recorder.SetSampling("s1", false)
	recorder.SetSampling("s2", true)

	// Act
	step(recorder, source, 100)

	recorder.ReleaseSession("s2")
	step(recorder, source, 200)

	recorder.SetSampling("s1", true)
	step(recorder, source, 300)

	// Assert
	records, err := recorder.Query("s1", nil, m.TimeStamp{}, m.NewTimeStamp(1, 0), false, protocol.EncodingBase64U32)
	require.NoError(t, err)

	times := make([]m.TimeStamp, 0, len(records))
	for _, record := range records {
		times = append(times, record.Time)
	}

	assert.Equal(t, []m.TimeStamp{
		m.NewTimeStamp(0, 0),
		m.NewTimeStamp(0, 100),
		m.NewTimeStamp(0, 300),
	}, times, "the step at 200 is skipped while the only remaining session opted out")
}
